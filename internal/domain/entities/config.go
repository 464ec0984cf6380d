package entities

// DefaultBucket is used when the action configuration names no bucket
const DefaultBucket = "devtools-test"

// ActionConfig is the JSON configuration blob handed to the CI action
type ActionConfig struct {
	Token          string `mapstructure:"token"`
	Bucket         string `mapstructure:"s3-bucket"`
	RoleARN        string `mapstructure:"s3-role-arn"`
	RoleExternalID string `mapstructure:"s3-role-external-id"`
	Org            string `mapstructure:"org"`
}

// RuntimeEnvironment holds the settings read from environment variables
type RuntimeEnvironment struct {
	RepoName           string
	RepoOwner          string
	DefaultBranch      string
	DockerPassword     string
	DockerRegistry     string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	GitHubToken        string
	GitHubAPIURL       string
	LogLevel           string
	OutputDir          string
	SigningKey         string // armored OpenPGP private key, optional
}

// RegistryCredentials derives the container registry login from the environment
func (e RuntimeEnvironment) RegistryCredentials() RegistryCredentials {
	return RegistryCredentials{
		Registry: e.DockerRegistry,
		Username: "AWS",
		Password: e.DockerPassword,
	}
}
