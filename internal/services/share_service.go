package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"concierge/internal/infra"
	"concierge/internal/models/plan_models"
	"concierge/pkg/utils"

	"github.com/klauspost/compress/zlib"
)

const sharePlanParam = "plan"

type ShareServiceInterface interface {
	Encode(plan *plan_models.Plan) (string, error)
	Decode(encoded string) (*plan_models.Plan, error)
	ShareURL(plan *plan_models.Plan) (string, string, error)
	DecodeLink(link string) (*plan_models.Plan, error)
}

type ShareService struct {
	baseURL string
}

func NewShareService(cfg *infra.Config) ShareServiceInterface {
	return &ShareService{baseURL: cfg.ShareBaseURL}
}

// Encode produces the query value for a plan: JSON, deflated, base64 and finally URL-escaped.
func (s *ShareService) Encode(plan *plan_models.Plan) (string, error) {
	if plan == nil {
		return "", utils.ErrNoPlan
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("%w: marshal plan: %v", utils.ErrExportFailed, err)
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("%w: deflate: %v", utils.ErrExportFailed, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%w: deflate: %v", utils.ErrExportFailed, err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// Decode reverses Encode. Any failing stage yields ErrInvalidShareLink.
func (s *ShareService) Decode(encoded string) (*plan_models.Plan, error) {
	unescaped, err := url.QueryUnescape(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: unescape: %v", utils.ErrInvalidShareLink, err)
	}
	// A '+' that lost its escaping on the way in arrives as a space.
	unescaped = strings.ReplaceAll(unescaped, " ", "+")
	compressed, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", utils.ErrInvalidShareLink, err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", utils.ErrInvalidShareLink, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", utils.ErrInvalidShareLink, err)
	}
	plan, err := plan_models.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidShareLink, err)
	}
	return plan, nil
}

// ShareURL returns the full link and the encoded parameter.
func (s *ShareService) ShareURL(plan *plan_models.Plan) (string, string, error) {
	encoded, err := s.Encode(plan)
	if err != nil {
		return "", "", err
	}
	sep := "?"
	if strings.Contains(s.baseURL, "?") {
		sep = "&"
	}
	return s.baseURL + sep + sharePlanParam + "=" + encoded, encoded, nil
}

// DecodeLink accepts either a full share URL or the bare encoded parameter.
func (s *ShareService) DecodeLink(link string) (*plan_models.Plan, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, fmt.Errorf("%w: empty link", utils.ErrInvalidShareLink)
	}
	if u, err := url.Parse(link); err == nil && u.RawQuery != "" {
		for _, part := range strings.Split(u.RawQuery, "&") {
			if v, ok := strings.CutPrefix(part, sharePlanParam+"="); ok {
				return s.Decode(v)
			}
		}
		return nil, fmt.Errorf("%w: no %s parameter", utils.ErrInvalidShareLink, sharePlanParam)
	}
	return s.Decode(link)
}
