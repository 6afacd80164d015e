package ipapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensteps/greensteps/internal/geo/ipapi"
	"github.com/greensteps/greensteps/internal/provider/resilience"
)

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7","city":"Amsterdam","region":"North Holland","country_name":"Netherlands"}`))
	}))
	defer server.Close()

	client := ipapi.NewClient(ipapi.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	loc, err := client.Lookup(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loc)

	assert.Equal(t, "203.0.113.7", loc.IP)
	assert.Equal(t, "Amsterdam", loc.City)
	assert.Equal(t, "North Holland", loc.Region)
	assert.Equal(t, "Netherlands", loc.Country)
}

func TestClient_Lookup_PartialFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"country_name":"Netherlands"}`))
	}))
	defer server.Close()

	client := ipapi.NewClient(ipapi.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	loc, err := client.Lookup(context.Background())
	require.NoError(t, err)

	assert.Empty(t, loc.IP)
	assert.Empty(t, loc.City)
	assert.Equal(t, "Netherlands", loc.Country)
}

func TestClient_Lookup_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := ipapi.NewClient(ipapi.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Lookup(context.Background())
	assert.Error(t, err)
}

func TestClient_Lookup_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := ipapi.NewClient(ipapi.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Lookup(context.Background())
	assert.Error(t, err)
}
