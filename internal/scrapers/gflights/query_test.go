package gflights

import (
	"net/url"
	"testing"

	"flightscout/internal/chrono"

	"github.com/stretchr/testify/require"
)

const searchURL = "https://www.google.com/travel/flights/search?tfs=CBwQAhooEgoyMDI1LTEwLTA0agwIAhIIL20vMDQ0cnZyDAgCEggvbS8wN2Rma0ABSAFwAYIBCwj___________8BmAED&hl=en&curr=IDR"

func TestDateURL(t *testing.T) {
	moved := DateURL(searchURL, chrono.Date(2025, 12, 1))

	link, err := url.Parse(moved)
	require.NoError(t, err)
	require.Equal(t, "/travel/flights/search", link.Path)
	require.Equal(t,
		"CBwQAhooEgoyMDI1LTEyLTAxagwIAhIIL20vMDQ0cnZyDAgCEggvbS8wN2Rma0ABSAFwAYIBCwj___________8BmAED",
		link.Query().Get("tfs"),
	)
	require.Equal(t, "en", link.Query().Get("hl"))
	require.Equal(t, "IDR", link.Query().Get("curr"))

	date, ok := EmbeddedDate(moved)
	require.True(t, ok)
	require.Equal(t, chrono.Date(2025, 12, 1), date)
}

func TestDateURLUnchanged(t *testing.T) {
	for _, base := range []string{
		"https://www.google.com/travel/flights?hl=en",
		"https://www.google.com/travel/flights/search?tfs=***",
		// decodes, but carries no date
		"https://www.google.com/travel/flights/search?tfs=CBwQAhoA",
		"::not a url",
	} {
		require.Equal(t, base, DateURL(base, chrono.Date(2025, 12, 1)), base)
		_, ok := EmbeddedDate(base)
		require.False(t, ok, base)
	}
}

func TestEmbeddedDate(t *testing.T) {
	date, ok := EmbeddedDate(searchURL)
	require.True(t, ok)
	require.Equal(t, chrono.Date(2025, 10, 4), date)
}
