package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/fhir_dto"
	"nutrisha-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

var errEmptyOperationOutcome = errors.New("FHIR server returned an error without diagnostics")

type Searcher struct {
	HTTPClient           *http.Client
	Log                  *zap.Logger
	MaxPages             int
	ForwardAuthorization bool
}

func NewSearcher(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.FhirSearcher {
	maxPages := internalConfig.FHIR.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Searcher{
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.FHIR.RequestTimeoutInSeconds) * time.Second,
		},
		Log:                  logger,
		MaxPages:             maxPages,
		ForwardAuthorization: internalConfig.FHIR.ForwardAuthorization,
	}
}

func (s *Searcher) Search(ctx context.Context, resourceType, searchURL string) ([]json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("bundleSearcher.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingURLKey, searchURL),
	)

	var resources []json.RawMessage
	nextURL := searchURL
	for page := 1; nextURL != "" && page <= s.MaxPages; page++ {
		bundle := new(fhir_dto.FHIRBundle)
		err := s.Read(ctx, resourceType, nextURL, bundle)
		if err != nil {
			return nil, err
		}

		for _, entry := range bundle.Entry {
			if entryResourceType(entry.Resource) != resourceType {
				continue
			}
			resources = append(resources, entry.Resource)
		}

		s.Log.Debug("bundleSearcher.Search page fetched",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Int(constvars.LoggingPageKey, page),
			zap.Int(constvars.LoggingCountKey, len(bundle.Entry)),
		)

		nextURL = resolveNextURL(nextURL, bundle.NextURL())
		if nextURL != "" && page == s.MaxPages {
			s.Log.Warn("bundleSearcher.Search stopped at page limit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceTypeKey, resourceType),
				zap.Int(constvars.LoggingPageKey, page),
			)
		}
	}

	s.Log.Info("bundleSearcher.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingCountKey, len(resources)),
	)
	return resources, nil
}

func (s *Searcher) Read(ctx context.Context, resourceType, resourceURL string, out interface{}) error {
	requestID := utils.GetRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, resourceURL, nil)
	if err != nil {
		s.Log.Error("bundleSearcher.Read error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if s.ForwardAuthorization {
		if authorization := utils.GetFhirAuthorization(ctx); authorization != "" {
			req.Header.Set(constvars.HeaderAuthorization, authorization)
		}
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.Log.Error("bundleSearcher.Read error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, resourceURL),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return exceptions.ErrServerDeadlineExceeded(err)
		}
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		fhirErr := readOperationOutcome(resp.Body)
		s.Log.Error("bundleSearcher.Read FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		if resp.StatusCode == constvars.StatusNotFound {
			return exceptions.ErrNoDataFHIRResource(fhirErr, resourceType)
		}
		return exceptions.ErrGetFHIRResource(fhirErr, resourceType)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		s.Log.Error("bundleSearcher.Read error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, resourceType)
	}
	return nil
}

func readOperationOutcome(body io.Reader) error {
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	var outcome fhir_dto.OperationOutcome
	err = json.Unmarshal(bodyBytes, &outcome)
	if err != nil {
		return fmt.Errorf("unexpected FHIR error body: %s", string(bodyBytes))
	}
	if len(outcome.Issue) > 0 && outcome.Issue[0].Diagnostics != "" {
		return errors.New(outcome.Issue[0].Diagnostics)
	}
	return errEmptyOperationOutcome
}

func entryResourceType(resource []byte) string {
	var header struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(resource, &header); err != nil {
		return ""
	}
	return header.ResourceType
}

// resolveNextURL accepts absolute and server-relative next links.
func resolveNextURL(currentURL, nextURL string) string {
	if nextURL == "" {
		return ""
	}
	base, err := url.Parse(currentURL)
	if err != nil {
		return nextURL
	}
	next, err := url.Parse(nextURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(next).String()
}

// ResourceURL joins the FHIR base url and a resource type.
func ResourceURL(baseURL, resourceType string) string {
	if baseURL == "" || baseURL[len(baseURL)-1] != '/' {
		baseURL += "/"
	}
	return baseURL + resourceType
}

// SearchURL builds "<base>/<resource>?<param>=Patient/<id>[&_count=n]".
func SearchURL(baseURL, resourceType, param, patientID string, count int) string {
	query := url.Values{}
	query.Set(param, fmt.Sprintf("%s/%s", constvars.ResourcePatient, patientID))
	if count > 0 {
		query.Set("_count", fmt.Sprintf("%d", count))
	}
	return ResourceURL(baseURL, resourceType) + "?" + query.Encode()
}

// Decode unmarshals every raw resource into T.
func Decode[T any](resources []json.RawMessage, resourceType string) ([]T, error) {
	results := make([]T, 0, len(resources))
	for _, raw := range resources {
		var resource T
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrDecodeResponse(err, resourceType)
		}
		results = append(results, resource)
	}
	return results, nil
}
