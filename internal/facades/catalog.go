package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// ErrServiceNotFound is returned when the catalog does not know the service.
var ErrServiceNotFound = errors.New("service not found in catalog")

// ServiceCatalogHTTPFacade reads service data from the external service
// catalog over HTTP. The catalog owns listings; this service only needs the
// owning business and the fixed price, if any.
type ServiceCatalogHTTPFacade struct {
	baseURL string
	client  *http.Client
}

// NewServiceCatalogHTTPFacade creates a new facade for the catalog at baseURL.
func NewServiceCatalogHTTPFacade(baseURL string, client *http.Client) *ServiceCatalogHTTPFacade {
	if client == nil {
		client = http.DefaultClient
	}
	return &ServiceCatalogHTTPFacade{baseURL: baseURL, client: client}
}

// GetService fetches the catalog entry for a service.
func (f *ServiceCatalogHTTPFacade) GetService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceInfo, error) {
	url := fmt.Sprintf("%s/api/v1/services/%s", f.baseURL, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("failed to fetch service from catalog", "service_id", serviceID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		logger.Log.Errorw("unexpected catalog response", "service_id", serviceID, "status", resp.StatusCode)
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var info models.ServiceInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		logger.Log.Errorw("failed to decode catalog response", "service_id", serviceID, "error", err)
		return nil, err
	}

	return &info, nil
}
