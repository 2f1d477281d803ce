package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/pkg/utils"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report json names ("seat_number")
// instead of Go field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// bindJSON decodes the request body into dst and translates decode and
// validation failures into field-keyed validation errors.
func bindJSON(c *gin.Context, dst interface{}) error {
	useJSONFieldNames()
	body, err := c.GetRawData()
	if err != nil {
		return domainerrors.Validation(domainerrors.NonFieldErrorsKey, "Unable to read request body.")
	}
	err = binding.JSON.BindBody(body, dst)
	if err == nil {
		return nil
	}
	if field, msg, ok := undecodableField(body, dst); ok {
		return domainerrors.Validation(field, msg)
	}
	return bindingError(err)
}

var uuidType = reflect.TypeOf(uuid.UUID{})

// undecodableField finds the first body member that cannot be decoded into
// its destination field. Text unmarshalers such as uuid.UUID fail without
// naming the field, so each member is decoded on its own.
func undecodableField(body []byte, dst interface{}) (string, string, bool) {
	var members map[string]json.RawMessage
	if json.Unmarshal(body, &members) != nil {
		return "", "", false
	}
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", "", false
	}

	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		raw, ok := members[name]
		if name == "" || name == "-" || !ok {
			continue
		}
		target := reflect.New(fld.Type)
		if json.Unmarshal(raw, target.Interface()) == nil {
			continue
		}
		if holdsUUID(fld.Type) {
			return name, domainerrors.MsgInvalidUUID, true
		}
		return name, domainerrors.MsgInvalid, true
	}
	return "", "", false
}

func holdsUUID(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == uuidType {
		return true
	}
	// Nullable[uuid.UUID] keeps the value behind its Value pointer
	if t.Kind() == reflect.Struct {
		if v, ok := t.FieldByName("Value"); ok {
			return holdsUUID(v.Type)
		}
	}
	return false
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := map[string][]string{}
		for _, fe := range verrs {
			name := fe.Field()
			fields[name] = append(fields[name], validationMessage(fe))
		}
		return domainerrors.ValidationFields(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domainerrors.Validation(typeErr.Field, domainerrors.MsgInvalid)
	}
	if errors.Is(err, io.EOF) {
		return domainerrors.Validation(domainerrors.NonFieldErrorsKey, "No data provided.")
	}
	return domainerrors.Validation(domainerrors.NonFieldErrorsKey, "JSON parse error - "+err.Error())
}

func validationMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return domainerrors.MsgRequired
	case "max":
		if isText {
			return domainerrors.MsgMaxLength(fe.Param())
		}
		return domainerrors.MsgMaxValue(fe.Param())
	case "lte":
		return domainerrors.MsgMaxValue(fe.Param())
	case "min", "gte":
		return domainerrors.MsgMinValue(fe.Param())
	}
	return domainerrors.MsgInvalid
}

// listParams are the query parameters every listing accepts.
type listParams struct {
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}

func parseListParams(c *gin.Context) listParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return listParams{
		Search:     strings.TrimSpace(c.Query("search")),
		Ordering:   c.Query("ordering"),
		Pagination: utils.GetPaginationParams(page, limit),
	}
}

// queryFilters parses optional filter parameters, collecting one error per
// malformed parameter.
type queryFilters struct {
	c    *gin.Context
	errs map[string][]string
}

func newQueryFilters(c *gin.Context) *queryFilters {
	return &queryFilters{c: c, errs: map[string][]string{}}
}

func (q *queryFilters) fail(name, msg string) {
	q.errs[name] = append(q.errs[name], msg)
}

func (q *queryFilters) UUID(name string) *uuid.UUID {
	id, err := utils.ParseOptionalUUID(q.c.Query(name))
	if err != nil {
		q.fail(name, "Enter a valid UUID.")
		return nil
	}
	return id
}

func (q *queryFilters) Int64(name string) *int64 {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.fail(name, "Enter a number.")
		return nil
	}
	return &v
}

func (q *queryFilters) Int(name string) *int {
	v := q.Int64(name)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func (q *queryFilters) Text(name string) *string {
	raw, ok := q.c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

func (q *queryFilters) Time(name string) *time.Time {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		q.fail(name, "Enter a valid date/time.")
		return nil
	}
	return &t
}

func (q *queryFilters) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domainerrors.ValidationFields(q.errs)
}

// uuidParam reads a UUID path parameter. A malformed id cannot match any
// row, so it is reported as not found.
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotFound
	}
	return id, nil
}

func int64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrNotFound
	}
	return id, nil
}
