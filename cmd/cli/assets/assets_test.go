package assets

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/asset-registry/internal/handlers"
	"github.com/crucial707/asset-registry/internal/models"
	"github.com/crucial707/asset-registry/internal/registry"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newAPI serves the real handlers over a fresh registry and points the CLI at it.
func newAPI(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	audit := registry.NewAuditLog(10)
	h := &handlers.AssetHandler{Registry: reg, Audit: audit}

	r := chi.NewRouter()
	r.Get("/assets", h.ListAssets)
	r.Post("/assets", h.CreateAsset)
	r.Get("/assets/{id}", h.GetAsset)
	r.Put("/assets/{id}", h.UpdateAsset)
	r.Delete("/assets/{id}", h.DeleteAsset)
	r.Get("/audit", (&handlers.AuditHandler{Log: audit}).ListAudit)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Setenv("ASSET_REGISTRY_API_URL", srv.URL)
	return reg
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// cobra reads os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedAsset(t *testing.T, reg *registry.Registry, id int, location string) {
	t.Helper()
	a := models.Asset{ID: id, Location: location, SerialNumber: "SN", AssetTag: "PT", Status: "active"}
	if _, err := reg.Create(a); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestListAssets_TableOutput(t *testing.T) {
	reg := newAPI(t)
	seedAsset(t, reg, 1, "warehouse-1")
	seedAsset(t, reg, 2, "warehouse-2")

	out, err := run(t, listAssetsCmd())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "warehouse-1") || !strings.Contains(out, "warehouse-2") {
		t.Fatalf("expected asset locations in output, got: %s", out)
	}
}

func TestListAssets_JSONOutput(t *testing.T) {
	reg := newAPI(t)
	seedAsset(t, reg, 1, "warehouse-1")

	out, err := run(t, listAssetsCmd(), "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, `"location": "warehouse-1"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestCreateAsset_SendsOnlyGivenFields(t *testing.T) {
	reg := newAPI(t)

	out, err := run(t, createAssetCmd(),
		"--id", "7", "--location", "HQ", "--serial-number", "SN7", "--asset-tag", "PT7",
		"--status", "active", "--date", "2024-06-01", "--signed-term")
	if err != nil {
		t.Fatalf("create: %v (%s)", err, out)
	}

	got, err := reg.Get(7)
	if err != nil {
		t.Fatalf("asset not stored: %v", err)
	}
	if got.Date == nil || got.Date.String() != "2024-06-01" || !got.SignedTerm || got.Note != nil {
		t.Errorf("unexpected stored asset: %+v", got)
	}

	var printed models.Asset
	if err := json.Unmarshal([]byte(out), &printed); err != nil || printed.ID != 7 {
		t.Errorf("unexpected output: %s (%v)", out, err)
	}
}

func TestCreateAsset_ValidationError(t *testing.T) {
	newAPI(t)

	_, err := run(t, createAssetCmd(), "--id", "1", "--location", "HQ")
	if err == nil {
		t.Fatal("expected error for incomplete asset")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "serial_number: required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateAsset_BadDate(t *testing.T) {
	newAPI(t)

	if _, err := run(t, createAssetCmd(), "--id", "1", "--date", "tomorrow"); err == nil {
		t.Fatal("expected local date validation error")
	}
}

func TestUpdateAsset_DefaultsBodyID(t *testing.T) {
	reg := newAPI(t)
	seedAsset(t, reg, 3, "HQ")

	_, err := run(t, updateAssetCmd(), "3",
		"--location", "Annex", "--serial-number", "SN", "--asset-tag", "PT", "--status", "retired")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := reg.Get(3)
	if err != nil || got.Status != "retired" || got.Location != "Annex" {
		t.Errorf("unexpected stored asset: %+v (%v)", got, err)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	newAPI(t)

	_, err := run(t, getAssetCmd(), "42")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	reg := newAPI(t)
	seedAsset(t, reg, 1, "HQ")

	out, err := run(t, deleteAssetCmd(), "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, handlers.MsgDeleted) {
		t.Errorf("unexpected output: %s", out)
	}
	if reg.Len() != 0 {
		t.Errorf("asset not deleted")
	}
}

func TestDeleteAsset_InvalidID(t *testing.T) {
	newAPI(t)

	_, err := run(t, deleteAssetCmd(), "abc")
	if err == nil {
		t.Fatal("expected error for non-integer id")
	}
	if err.Error() != `invalid asset id "abc"` {
		t.Errorf("unexpected error: %v", err)
	}
	type stackTracer interface{ StackTrace() errors.StackTrace }
	if _, ok := err.(stackTracer); !ok {
		t.Errorf("expected a pkg/errors error, got %T", err)
	}
}

func TestAudit(t *testing.T) {
	newAPI(t)

	if _, err := run(t, createAssetCmd(), "--id", "1", "--location", "HQ", "--serial-number", "S", "--asset-tag", "T", "--status", "s"); err != nil {
		t.Fatalf("create: %v", err)
	}
	out, err := run(t, auditCmd(), "--json")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !strings.Contains(out, `"action": "create"`) {
		t.Errorf("unexpected audit output: %s", out)
	}
}
