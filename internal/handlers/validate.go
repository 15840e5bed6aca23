package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/crucial707/asset-registry/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// assetInput is the request body for create and replace. Pointers tell
// "absent" apart from zero values, so id 0 and empty strings are accepted.
type assetInput struct {
	ID              *int         `json:"id" validate:"required"`
	Location        *string      `json:"location" validate:"required"`
	SerialNumber    *string      `json:"serial_number" validate:"required"`
	AssetTag        *string      `json:"asset_tag" validate:"required"`
	Status          *string      `json:"status" validate:"required"`
	Date            *models.Date `json:"date"`
	StationLabel    *string      `json:"station_label"`
	Manufacturer    *string      `json:"manufacturer"`
	BrandModel      *string      `json:"brand_model"`
	ServerExtension *string      `json:"server_extension"`
	IP              *string      `json:"ip"`
	Note            *string      `json:"note"`
	SignedTerm      *bool        `json:"signed_term"`
}

func (in assetInput) asset() models.Asset {
	a := models.Asset{
		ID:              *in.ID,
		Location:        *in.Location,
		SerialNumber:    *in.SerialNumber,
		AssetTag:        *in.AssetTag,
		Status:          *in.Status,
		Date:            in.Date,
		StationLabel:    in.StationLabel,
		Manufacturer:    in.Manufacturer,
		BrandModel:      in.BrandModel,
		ServerExtension: in.ServerExtension,
		IP:              in.IP,
		Note:            in.Note,
	}
	if in.SignedTerm != nil {
		a.SignedTerm = *in.SignedTerm
	}
	return a
}

// bodyError is a request body rejected before it reaches the registry.
type bodyError struct {
	status  int
	message string
	fields  map[string]string
}

func (e *bodyError) write(w http.ResponseWriter) {
	JSONValidationError(w, e.message, e.fields, e.status)
}

func invalidFields(fields map[string]string) *bodyError {
	return &bodyError{status: http.StatusUnprocessableEntity, message: "validation failed", fields: fields}
}

// decodeAsset reads and validates a full Asset from the request body.
// Keys must match the JSON field names exactly; any other key is ignored, so
// "Location" does not satisfy a required "location". Every field error is
// reported together.
func decodeAsset(r *http.Request) (models.Asset, *bodyError) {
	raw, berr := readObject(r.Body)
	if berr != nil {
		return models.Asset{}, berr
	}

	var in assetInput
	fields := map[string]string{}
	v := reflect.ValueOf(&in).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := jsonName(v.Type().Field(i))
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, v.Field(i).Addr().Interface()); err != nil {
			fields[name] = fieldMessage(err)
		}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Asset{}, &bodyError{status: http.StatusUnprocessableEntity, message: err.Error()}
		}
		for _, fe := range verrs {
			// a type error on the same field says more than "required"
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fe.Tag()
			}
		}
	}
	if len(fields) > 0 {
		return models.Asset{}, invalidFields(fields)
	}

	return in.asset(), nil
}

// readObject decodes exactly one JSON object from body. Trailing data after
// the object makes the body invalid.
func readObject(body io.Reader) (map[string]json.RawMessage, *bodyError) {
	dec := json.NewDecoder(body)
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &bodyError{status: http.StatusUnprocessableEntity, message: "request body required"}
		}
		return nil, readError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, readError(err)
	}
	return raw, nil
}

func readError(err error) *bodyError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &bodyError{status: http.StatusRequestEntityTooLarge, message: "request body too large"}
	}
	return &bodyError{status: http.StatusUnprocessableEntity, message: "invalid JSON"}
}

func fieldMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		return "must be a date (YYYY-MM-DD)"
	case errors.As(err, &typeErr):
		return "invalid type, expected " + typeErr.Type.String()
	default:
		return "invalid value"
	}
}
