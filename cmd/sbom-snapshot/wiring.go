package main

import (
	"github.com/ochairo/sbom-snapshot/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/sbom-snapshot/internal/domain-orchestrators"
	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/services"
	"github.com/ochairo/sbom-snapshot/internal/external-adapters/awscloud"
)

// snapshotDeps holds everything the commands need
type snapshotDeps struct {
	orchestrator *orchestrators.SnapshotOrchestrator
	persister    *services.ReportPersister
}

// buildSnapshotDeps wires the adapters, services and orchestrator
func buildSnapshotDeps(runtimeEnv entities.RuntimeEnvironment, token, scanPath string, logger interfaces.Logger) (*snapshotDeps, error) {
	runner := gateways.NewCommandExecutor(logger)

	client := gateways.NewRateLimitedClient(gateways.WithLogger(logger))
	github := gateways.NewHTTPGitHubGateway(client, runtimeEnv.GitHubAPIURL, token, logger)

	acquisition := services.NewAcquisitionService(
		gateways.NewSyftScanner(runner, logger),
		gateways.NewDockerBuilder(runner, logger),
		gateways.NewRegexFileLocator(),
		logger,
	)

	metadata := services.NewMetadataService(gateways.NewGitCommitLog(runner, scanPath), github, logger)

	awsConfig := awscloud.Config{
		Region:          runtimeEnv.AWSRegion,
		AccessKeyID:     runtimeEnv.AWSAccessKeyID,
		SecretAccessKey: runtimeEnv.AWSSecretAccessKey,
	}
	assumer, err := awscloud.NewRoleAssumer(awsConfig)
	if err != nil {
		return nil, err
	}

	persisterConfig := services.ReportPersisterConfig{
		OutputDir: runtimeEnv.OutputDir,
		Assumer:   assumer,
		Store:     awscloud.NewObjectStore(awsConfig),
		Logger:    logger,
	}
	if runtimeEnv.SigningKey != "" {
		signer, err := gateways.NewGPGReportSigner(runtimeEnv.SigningKey, "")
		if err != nil {
			return nil, err
		}
		logger.Info("Reports will be signed", interfaces.F("key_id", signer.KeyID()))
		persisterConfig.Signer = signer
	}
	persister := services.NewReportPersister(persisterConfig)

	orchestratorConfig := orchestrators.SnapshotOrchestratorConfig{Logger: logger}
	if awscloud.IsECRRegistry(runtimeEnv.DockerRegistry) {
		resolver, err := awscloud.NewRegistryTokenProvider(awsConfig)
		if err != nil {
			return nil, err
		}
		orchestratorConfig.Resolver = resolver
	}

	orchestrator := orchestrators.NewSnapshotOrchestrator(
		metadata,
		acquisition,
		services.NewReportCompressor(logger),
		persister,
		orchestratorConfig,
	)

	return &snapshotDeps{orchestrator: orchestrator, persister: persister}, nil
}
