package assets

import (
	"github.com/crucial707/asset-registry/internal/models"
	"github.com/spf13/cobra"
)

// stringFields maps flag names to Asset JSON keys.
var stringFields = []struct{ flag, key, usage string }{
	{"location", "location", "location (required)"},
	{"serial-number", "serial_number", "serial number (required)"},
	{"asset-tag", "asset_tag", "asset tag (required)"},
	{"status", "status", "status (required)"},
	{"station-label", "station_label", "station label"},
	{"manufacturer", "manufacturer", "manufacturer"},
	{"brand-model", "brand_model", "brand and model"},
	{"server-extension", "server_extension", "server extension"},
	{"ip", "ip", "IP address"},
	{"note", "note", "free-form note"},
}

func addAssetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("id", 0, "asset id (required for create)")
	for _, f := range stringFields {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().String("date", "", "date as YYYY-MM-DD")
	cmd.Flags().Bool("signed-term", false, "whether the term was signed")
}

// payloadFromFlags builds a request body holding only the flags the user set,
// so the server sees unset fields as absent.
func payloadFromFlags(cmd *cobra.Command) (map[string]any, error) {
	flags := cmd.Flags()
	payload := map[string]any{}

	if flags.Changed("id") {
		id, err := flags.GetInt("id")
		if err != nil {
			return nil, err
		}
		payload["id"] = id
	}
	for _, f := range stringFields {
		if !flags.Changed(f.flag) {
			continue
		}
		v, err := flags.GetString(f.flag)
		if err != nil {
			return nil, err
		}
		payload[f.key] = v
	}
	if flags.Changed("date") {
		v, err := flags.GetString("date")
		if err != nil {
			return nil, err
		}
		d, err := models.ParseDate(v)
		if err != nil {
			return nil, err
		}
		payload["date"] = d
	}
	if flags.Changed("signed-term") {
		v, err := flags.GetBool("signed-term")
		if err != nil {
			return nil, err
		}
		payload["signed_term"] = v
	}
	return payload, nil
}
