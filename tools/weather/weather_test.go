package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/tools/weather"
)

func Test_Tool(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "testkey")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "testkey", r.URL.Query().Get("key"))
		assert.Equal(t, "Tokyo", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"current": {"temp_c": 21.5, "condition": {"text": "Partly cloudy"}}}`))
	}))
	defer server.Close()

	tool, err := weather.New()
	require.NoError(t, err)
	tool.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	assert.Equal(t, weather.ToolName, tool.Name())
	assert.Contains(t, tool.Description(), "weather")
	assert.NotNil(t, tool.Parameters())

	out, err := tool.Call(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "The current temperature in Tokyo is 21.5°C with Partly cloudy.", out)

	// JSON-object input form is accepted as well
	out, err = tool.Call(context.Background(), `{"Location": "Tokyo"}`)
	require.NoError(t, err)
	assert.Equal(t, "The current temperature in Tokyo is 21.5°C with Partly cloudy.", out)
}

func Test_Tool_APIError(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "testkey")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 1006, "message": "No matching location found."}}`))
	}))
	defer server.Close()

	tool, err := weather.New()
	require.NoError(t, err)
	tool.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	_, err = tool.Call(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No matching location found.")
}

func Test_Tool_EmptyLocation(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "testkey")

	tool, err := weather.New()
	require.NoError(t, err)

	_, err = tool.Call(context.Background(), "")
	assert.EqualError(t, err, "invalid request: empty location")
}

func Test_New_MissingKey(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "")

	_, err := weather.New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_API_KEY")
}
