package observations

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"nutrisha-service/internal/app/services/fhir_spark/bundle"
	"nutrisha-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObservationFhirClient_FindObservationsBySubject(t *testing.T) {
	var (
		gotPath  string
		gotQuery url.Values
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
		fmt.Fprint(w, `{"resourceType":"Bundle","entry":[{"resource":{
			"resourceType":"Observation","id":"o1","status":"final",
			"code":{"coding":[{"system":"http://loinc.org","code":"29463-7"}]},
			"effectiveDateTime":"2024-05-01","valueQuantity":{"value":72.5,"unit":"kg"}}}]}`)
	}))
	defer server.Close()

	client := &observationFhirClient{
		BaseUrl:  server.URL,
		Searcher: &bundle.Searcher{HTTPClient: http.DefaultClient, Log: zap.NewNop(), MaxPages: 1},
		Log:      zap.NewNop(),
	}

	observations, err := client.FindObservationsBySubject(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "/Observation", gotPath)
	assert.Equal(t, "Patient/p1", gotQuery.Get("subject"))
	assert.Equal(t, "1000", gotQuery.Get("_count"))
	assert.Empty(t, gotQuery.Get("patient"))

	require.Len(t, observations, 1)
	assert.Equal(t, constvars.ResourceObservation, observations[0].ResourceType)
	assert.Equal(t, "29463-7", observations[0].Code.FirstCoding().Code)
	require.NotNil(t, observations[0].ValueQuantity)
	assert.Equal(t, 72.5, *observations[0].ValueQuantity.Value)
}
