package services

import (
	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/environs"
)

// Packages the scoring container needs beyond the interpreter. Everything
// else in the reference environment is development tooling and stays out of
// the image.
var (
	defaultCondaPackages = []string{"scikit-learn", "numpy", "pillow"}
	defaultPipPackages   = []string{"fastai==1.0.48", "azureml-defaults"}
)

// EnvironmentService produces the constrained environment file the image
// build consumes.
type EnvironmentService struct {
	condaPackages []string
	pipPackages   []string
	pythonVersion string
}

func NewEnvironmentService() *EnvironmentService {
	return &EnvironmentService{
		condaPackages: defaultCondaPackages,
		pipPackages:   defaultPipPackages,
		pythonVersion: environs.DefaultPythonVersion,
	}
}

// Generate builds the scoring environment from the reference file and writes
// it to outPath.
func (s *EnvironmentService) Generate(referencePath, outPath string) (*environs.Environment, error) {
	env, err := environs.Generate(referencePath, environs.Options{
		Name:          "scoring-env",
		PythonVersion: s.pythonVersion,
		CondaPackages: s.condaPackages,
		PipPackages:   s.pipPackages,
	})
	if err != nil {
		return nil, err
	}
	if err := env.Write(outPath); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"reference": referencePath,
		"out":       outPath,
		"python":    env.PythonPin(),
	}).Info("scoring environment generated")

	return env, nil
}
