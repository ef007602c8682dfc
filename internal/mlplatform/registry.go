package mlplatform

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
)

// Model is a registry entry binding a name to a trained artifact.
type Model struct {
	Name             string `json:"name"`
	ArtifactLocation string `json:"artifact_location"`
}

// UpsertModel publishes artifact under name with overwrite-or-create
// semantics. There is no check-then-delete sequence, so concurrent runs
// cannot race: the last writer wins.
func (c *Client) UpsertModel(ctx context.Context, name, artifact string) error {
	model := Model{Name: name, ArtifactLocation: artifact}
	path := "/v1/models/" + url.PathEscape(name)
	if err := c.doJSON(ctx, http.MethodPut, path, model, nil); err != nil {
		return err
	}
	slog.Info("mlplatform: model upserted", "model", name, "artifact", artifact)
	return nil
}
