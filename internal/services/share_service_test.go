package services

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"concierge/internal/infra"
	"concierge/pkg/utils"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShareService() ShareServiceInterface {
	return NewShareService(&infra.Config{ShareBaseURL: "https://concierge.example/"})
}

func deflateBase64(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return url.QueryEscape(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func TestShareService_RoundTrip(t *testing.T) {
	svc := newTestShareService()
	plan := makePlan(2, 1)
	plan.Days[0].Segments[0].CostUSD = floatPtr(420)
	plan.Trip.Dates.Start = "2025-05-01"

	encoded, err := svc.Encode(plan)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")

	decoded, err := svc.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, plan.SegmentIDs(), decoded.SegmentIDs())
	assert.Equal(t, plan.Trip.Destinations, decoded.Trip.Destinations)
	assert.Equal(t, "2025-05-01", decoded.Trip.Dates.Start)
	require.NotNil(t, decoded.Days[0].Segments[0].CostUSD)
	assert.Equal(t, 420.0, *decoded.Days[0].Segments[0].CostUSD)
}

func TestShareService_ShareURLAndDecodeLink(t *testing.T) {
	svc := newTestShareService()
	plan := makePlan(1)

	link, encoded, err := svc.ShareURL(plan)
	require.NoError(t, err)
	assert.Equal(t, "https://concierge.example/?plan="+encoded, link)

	fromLink, err := svc.DecodeLink(link)
	require.NoError(t, err)
	assert.Equal(t, plan.SegmentIDs(), fromLink.SegmentIDs())

	fromParam, err := svc.DecodeLink(encoded)
	require.NoError(t, err)
	assert.Equal(t, plan.SegmentIDs(), fromParam.SegmentIDs())
}

func TestShareService_ShareURLKeepsExistingQuery(t *testing.T) {
	svc := NewShareService(&infra.Config{ShareBaseURL: "https://concierge.example/app?ref=mail"})

	link, _, err := svc.ShareURL(makePlan(1))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://concierge.example/app?ref=mail&plan="))
	_, err = svc.DecodeLink(link)
	assert.NoError(t, err)
}

func TestShareService_UnescapedPlusSurvives(t *testing.T) {
	svc := newTestShareService()
	encoded, err := svc.Encode(makePlan(3, 2))
	require.NoError(t, err)

	raw, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	mangled := strings.ReplaceAll(raw, "+", " ")

	_, err = svc.Decode(mangled)
	assert.NoError(t, err)
}

func TestShareService_BadLinks(t *testing.T) {
	svc := newTestShareService()
	cases := map[string]string{
		"empty":        "",
		"bad escape":   "%zz",
		"not base64":   "***",
		"not deflated": url.QueryEscape(base64.StdEncoding.EncodeToString([]byte("plain text"))),
		"not a plan":   deflateBase64(t, `[1,2,3]`),
		"no param":     "https://concierge.example/?other=1",
	}
	for name, link := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.DecodeLink(link)
			assert.ErrorIs(t, err, utils.ErrInvalidShareLink)
		})
	}
}

func TestShareService_EncodeWithoutPlan(t *testing.T) {
	_, err := newTestShareService().Encode(nil)
	assert.ErrorIs(t, err, utils.ErrNoPlan)
}
