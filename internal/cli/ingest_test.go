package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenday/screenday/internal/event"
)

func TestDecodeEvents_MapsCodes(t *testing.T) {
	in := strings.Join([]string{
		`{"package_name":"com.app.a","source":"SYSTEM","code":1,"timestamp":1000,"date":"2026-08-30"}`,
		`{"package_name":"com.app.a","source":"CAPTURE","code":4096,"timestamp":2000,"date":"2026-08-30","value":340}`,
		`{"package_name":"com.app.a","source":"SYSTEM","code":2,"timestamp":3000,"date":"2026-08-30"}`,
	}, "\n")

	events, dropped, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, events, 3)

	assert.Equal(t, event.TypeActivityResumed, events[0].Type)
	assert.Equal(t, event.TypeScroll, events[1].Type)
	require.NotNil(t, events[1].Value)
	assert.Equal(t, int64(340), *events[1].Value)
	assert.Equal(t, event.TypeActivityPaused, events[2].Type)
}

func TestDecodeEvents_CodeWinsOverTypeName(t *testing.T) {
	in := `{"package_name":"com.app.a","source":"SYSTEM","code":1,"type":"SCROLL","timestamp":1000,"date":"2026-08-30"}`

	events, _, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeActivityResumed, events[0].Type)
}

func TestDecodeEvents_TypeNameFallback(t *testing.T) {
	in := `{"package_name":"com.app.a","source":"SYSTEM","type":"USER_INTERACTION","timestamp":1000,"date":"2026-08-30"}`

	events, _, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeUserInteraction, events[0].Type)
}

func TestDecodeEvents_DropsUnmappedRecords(t *testing.T) {
	in := strings.Join([]string{
		`{"package_name":"com.app.a","source":"SYSTEM","code":1,"timestamp":1000,"date":"2026-08-30"}`,
		`{"package_name":"com.app.a","source":"SYSTEM","code":11,"timestamp":2000,"date":"2026-08-30"}`,
		`{"package_name":"com.app.a","source":"SYSTEM","type":"STANDBY_BUCKET_CHANGED","timestamp":3000,"date":"2026-08-30"}`,
	}, "\n")

	events, dropped, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, events, 1)
}

func TestDecodeEvents_MalformedLineErrors(t *testing.T) {
	in := strings.Join([]string{
		`{"package_name":"com.app.a","source":"SYSTEM","code":1,"timestamp":1000,"date":"2026-08-30"}`,
		`{not json`,
	}, "\n")

	_, _, err := decodeEvents(strings.NewReader(in))
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 2")
}

func TestDecodeEvents_SkipsBlankLines(t *testing.T) {
	in := "\n" +
		`{"package_name":"com.app.a","source":"SYSTEM","code":1,"timestamp":1000,"date":"2026-08-30"}` +
		"\n\n"

	events, dropped, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Len(t, events, 1)
}

func TestDecodeEvents_EmptyInput(t *testing.T) {
	events, dropped, err := decodeEvents(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Empty(t, events)
}
