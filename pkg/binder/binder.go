package binder

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/bookchain/bookchain/pkg/errcodes"
	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

// AllowEmptyBodyKey can be set to true on the echo context to let a write
// request without a body through to validation, so that it fails on the
// missing fields instead of on the body itself.
const AllowEmptyBodyKey = "allow_empty_body"

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder is a custom struct that implements the Echo Binder interface. It binds
// to a struct, uses mold to clean up the params, and validator to validate
// them.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Binder{queryDecoder, formDecoder, conform, validate}, nil
}

// Bind binds, modifies, and validates payloads against the given struct.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)

	allowEmptyBody, _ := c.Get(AllowEmptyBodyKey).(bool)

	// ContentLength is -1 for chunked bodies, so only 0 means "no body".
	hasBody := req.ContentLength != 0 && req.Body != nil && req.Body != http.NoBody

	if hasBody {
		ctype := req.Header.Get(echo.HeaderContentType)
		switch {
		case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
			dec := json.NewDecoder(req.Body)
			dec.DisallowUnknownFields()
			defer req.Body.Close()
			err := dec.Decode(i)
			if errors.Is(err, io.EOF) && req.ContentLength < 0 {
				// a chunked body that turned out to be empty
				return b.bindEmpty(i, c, allowEmptyBody)
			}
			if err != nil {
				// return better error message when there are unknown fields
				if matches := unknownFieldsRE.FindAllStringSubmatch(err.Error(), -1); len(matches) > 0 && len(matches[0]) > 1 {
					return errcodes.UnknownParameter(matches[0][1])
				}

				// return better error message on type errors
				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &typeErr) {
					return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
				}

				log.Err(err).Warn("json decode error")

				return errcodes.MalformedPayload()
			}
		case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
			params, err := c.FormParams()
			if err != nil {
				return errcodes.MalformedPayload()
			}
			if err := b.decodeValues(i, params, b.formDecoder); err != nil {
				return err
			}
		default:
			return errcodes.UnsupportedMediaType()
		}
		return b.finish(i, c)
	}

	return b.bindEmpty(i, c, allowEmptyBody)
}

// bindEmpty handles requests without a body: reads bind the query string,
// writes are rejected unless the route allows an empty body.
func (b *Binder) bindEmpty(i interface{}, c echo.Context, allowEmptyBody bool) error {
	req := c.Request()
	if req.Method == http.MethodGet || req.Method == http.MethodDelete {
		if err := b.decodeValues(i, c.QueryParams(), b.queryDecoder); err != nil {
			return err
		}
	} else if !allowEmptyBody {
		return errcodes.EmptyRequestBody()
	}
	return b.finish(i, c)
}

// finish trims, fills defaults, and validates a decoded payload.
func (b *Binder) finish(i interface{}, c echo.Context) error {
	req := c.Request()

	if err := b.conform.Struct(req.Context(), i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	return b.Validate(i)
}

// Validate runs the validate tags of i and reports every failing field at
// once, in struct order.
func (b *Binder) Validate(i interface{}) error {
	err := b.validate.Struct(i)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errors.WithStack(err)
	}

	msgs := make([]string, 0, len(errs))
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, formatValidationError(fe))
		fields = append(fields, fe.Field())
	}
	return errcodes.ValidationError(strings.Join(msgs, ", "), fields...)
}

func (b *Binder) decodeValues(i interface{}, params url.Values, decoder *schema.Decoder) error {
	err := decoder.Decode(i, params)
	if err == nil {
		return nil
	}

	errs, ok := err.(schema.MultiError)
	if !ok {
		return errors.WithStack(err)
	}
	for _, err := range errs {
		var conversionErr schema.ConversionError
		if errors.As(err, &conversionErr) {
			return errcodes.ValidationTypeError(formatSchemaConversionError(conversionErr))
		}
		var unknownErr schema.UnknownKeyError
		if errors.As(err, &unknownErr) {
			return errcodes.UnknownParameter(unknownErr.Key)
		}
		return errors.WithStack(err)
	}
	return errors.WithStack(err)
}
