package myhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

type ResponseWriter interface {
	WriteError(c context.Context, w http.ResponseWriter, err error)
	Write(c context.Context, w http.ResponseWriter, httpStatus int, resp any)
	WriteHTML(c context.Context, w http.ResponseWriter, httpStatus int, tmpl *template.Template, data any)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func NewWriter(logger mylog.Logger) ResponseWriter {
	return &responseWriter{
		logger: logger,
	}
}

type responseWriter struct {
	logger mylog.Logger
}

func (rw responseWriter) WriteError(c context.Context, w http.ResponseWriter, err error) {
	httpStatus := myerrors.GetHTTPStatus(err)
	rw.logger.Log(c, "", mylog.SeverityWarn, "Error response: http-status:%d, error-msg:%s", httpStatus, err)
	rw.write(w, httpStatus, errorResponse{
		Success: false,
		Error:   myerrors.GetMessage(err),
		Details: myerrors.GetDetails(err),
	})
}

// Write merges the fields of resp into a {"success":true} envelope. Payloads that do not
// serialize to a json object end up under "data".
func (rw responseWriter) Write(c context.Context, w http.ResponseWriter, httpStatus int, resp any) {
	rw.logger.Log(c, "", mylog.SeverityDebug, "Success response: http-status:%d", httpStatus)

	body, err := successEnvelope(resp)
	if err != nil {
		rw.WriteError(c, w, myerrors.NewInternalError(err))
		return
	}
	rw.write(w, httpStatus, body)
}

func (rw responseWriter) WriteHTML(c context.Context, w http.ResponseWriter, httpStatus int, tmpl *template.Template, data any) {
	buf := bytes.Buffer{}
	err := tmpl.Execute(&buf, data)
	if err != nil {
		rw.logger.Log(c, "", mylog.SeverityError, "Error rendering template %s: %s", tmpl.Name(), err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(httpStatus)
	_, err = buf.WriteTo(w)
	if err != nil {
		rw.logger.Log(c, "", mylog.SeverityWarn, "Error writing page: %s", err)
	}
}

func successEnvelope(resp any) (map[string]any, error) {
	body := map[string]any{}
	if resp != nil {
		raw, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		fields := map[string]json.RawMessage{}
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) && json.Unmarshal(raw, &fields) == nil {
			for k, v := range fields {
				body[k] = v
			}
		} else {
			body["data"] = json.RawMessage(raw)
		}
	}
	body["success"] = true
	return body, nil
}

func (rw responseWriter) write(w http.ResponseWriter, httpStatus int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	err := encoder.Encode(resp)
	if err != nil {
		log.Printf("Error writing response: %s", err)
		return
	}
}
