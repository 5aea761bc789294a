package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// DeploymentStatus joins a journal row with the live state of its service.
type DeploymentStatus struct {
	Record       *domain.DeploymentRecord
	ServiceState domain.ServiceState
	ScoringURI   string
}

// StatusService reports journal rows together with live service state.
type StatusService struct {
	ws    ports.WorkspaceClient
	store ports.DeploymentStore
}

func NewStatusService(ws ports.WorkspaceClient, store ports.DeploymentStore) *StatusService {
	return &StatusService{ws: ws, store: store}
}

// List returns one entry per journal row. For deployed rows the live service
// state is fetched; a lookup failure leaves the state empty rather than
// failing the listing.
func (s *StatusService) List(ctx context.Context) ([]DeploymentStatus, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DeploymentStatus, 0, len(recs))
	for _, rec := range recs {
		st := DeploymentStatus{Record: rec, ScoringURI: rec.ScoringURI}
		if rec.Stage == domain.StageDeployed && rec.ServiceName != "" {
			svc, err := s.ws.GetService(ctx, rec.ServiceName)
			if err != nil {
				log.WithError(err).WithField("service", rec.ServiceName).Warn("live state lookup failed")
			} else {
				st.ServiceState = svc.State
				st.ScoringURI = svc.ScoringURI
			}
		}
		out = append(out, st)
	}
	return out, nil
}
