package yaml

import (
	"testing"
)

// FuzzConfigParser tests the parser against random/malformed inputs
// to detect crashes or panics.
//
// Run with: go test -fuzz=FuzzConfigParser -fuzztime=30s
func FuzzConfigParser(f *testing.F) {
	f.Add([]byte(`{"token": "x", "s3-bucket": "b", "org": "olxbr"}`))
	f.Add([]byte("s3-role-arn: arn:aws:iam::123456789012:role/w\n"))
	f.Add([]byte(`{}`))
	f.Add([]byte(``))
	f.Add([]byte(`{"token": {"nested": true}}`))

	parser := NewConfigParser()
	f.Fuzz(func(t *testing.T, data []byte) {
		config, err := parser.Parse(data)
		if err != nil {
			return
		}
		if config.Bucket == "" {
			t.Errorf("Parse() returned empty bucket for %q", data)
		}
	})
}
