package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/types"
)

func TestResolveComponentsFromBuildNumbers(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultBuildResultsIndex,
		buildHit("sql", float64(10500), float64(2)),
		buildHit("ml", float64(10500), float64(2)),
		buildHit("sql", float64(10500), float64(2)), // re-indexed duplicate
		buildHit("alerting", float64(10507), float64(2)),
	)
	res, err := eng.ResolveComponentsFromBuildNumbers(context.Background(), "2.19.0", types.StringList{"10500", "10507"})
	require.NoError(t, err)
	// Components de-duplicated per build number, sorted.
	require.Equal(t, map[string][]string{
		"10500": {"ml", "sql"},
		"10507": {"alerting"},
	}, res)
}

func TestResolveComponentsValidation(t *testing.T) {
	eng, client := testEngine(t)
	_, err := eng.ResolveComponentsFromBuildNumbers(context.Background(), "", types.StringList{"10500"})
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	_, err = eng.ResolveComponentsFromBuildNumbers(context.Background(), "2.19.0", nil)
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	require.Empty(t, client.Requests)
}

// RC build-number lookups return the FULL rebuild history per key, not one
// winner: callers translating identifier spaces need every build number.
func TestRCBuildNumbersByComponent(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultBuildResultsIndex,
		buildHit("sql", float64(10507), float64(2)),
		buildHit("sql", float64(10500), float64(2)),
		buildHit("sql", float64(10507), float64(2)), // duplicate row
		buildHit("ml", float64(10501), float64(2)),
	)
	res, err := eng.RCBuildNumbersByComponent(context.Background(), "2.19.0", "2")
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"sql": {"10507", "10500"},
		"ml":  {"10501"},
	}, res)
}

func TestRCBuildNumbersForComponent(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultBuildResultsIndex,
		buildHit("sql", float64(10507), float64(2)),
		buildHit("sql", float64(10500), float64(2)),
		buildHit("sql", float64(10500), float64(2)),
	)
	res, err := eng.RCBuildNumbersForComponent(context.Background(), "2.19.0", "2", "sql")
	require.NoError(t, err)
	require.Equal(t, []string{"10507", "10500"}, res)
}

func TestRCBuildNumbersValidation(t *testing.T) {
	eng, _ := testEngine(t)

	_, err := eng.RCBuildNumbersByComponent(context.Background(), "", "2")
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	_, err = eng.RCBuildNumbersByComponent(context.Background(), "2.19.0", "")
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	_, err = eng.RCBuildNumbersForComponent(context.Background(), "2.19.0", "2", "")
	require.Equal(t, ErrorTypeValidation, ErrorType(err))
}
