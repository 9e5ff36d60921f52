package stremio_f1catchup

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/f1catchup/f1catchup/internal/shared"
	stremio_transformer "github.com/f1catchup/f1catchup/internal/stremio/transformer"
	"github.com/f1catchup/f1catchup/internal/util"
)

type UserData struct {
	TorBoxAPIKey string `json:"torbox_api_key,omitempty"`
	Filter       string `json:"filter,omitempty"`

	filter *stremio_transformer.StreamFilter
}

// LogValue never carries the api key.
func (ud UserData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", strings.TrimSpace(ud.TorBoxAPIKey) != ""),
		slog.String("filter", ud.Filter),
	)
}

// GetAPIKey falls back to the instance key when the install carries none.
func (ud *UserData) GetAPIKey(fallback string) string {
	if key := strings.TrimSpace(ud.TorBoxAPIKey); key != "" {
		return key
	}
	return fallback
}

func (ud *UserData) GetFilter() *stremio_transformer.StreamFilter {
	return ud.filter
}

func (ud *UserData) Encode() (string, error) {
	blob, err := json.Marshal(ud)
	if err != nil {
		return "", err
	}
	return util.Base64EncodeURL(string(blob)), nil
}

type userDataError struct {
	field string
	msg   string
}

func (uderr *userDataError) Error() string {
	return uderr.field + ": " + uderr.msg
}

func parseUserData(encoded string) (*UserData, error) {
	ud := &UserData{}
	if encoded == "" {
		return ud, nil
	}

	blob, err := util.Base64DecodeURL(encoded)
	if err != nil {
		return nil, &userDataError{field: "userData", msg: "invalid encoding"}
	}
	if err := json.Unmarshal([]byte(blob), ud); err != nil {
		return nil, &userDataError{field: "userData", msg: "invalid json"}
	}

	if ud.Filter != "" {
		filter, err := stremio_transformer.StreamFilterBlob(ud.Filter).Parse()
		if err != nil {
			return nil, &userDataError{field: "filter", msg: err.Error()}
		}
		ud.filter = filter
	}

	return ud, nil
}

func getUserData(r *http.Request) (*UserData, error) {
	ud, err := parseUserData(r.PathValue("userData"))
	if err != nil {
		return nil, shared.ErrorBadRequest(r, "failed to parse user data: "+err.Error()).WithCause(err)
	}
	return ud, nil
}
