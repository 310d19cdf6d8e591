package myhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
)

const maxRequestBodySize = 1 << 20

func HostnameWithScheme(r *http.Request) string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}

	scheme := "https"
	if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GuessHostnameWithScheme is used outside a request, e.g. when subscribing push endpoints at startup.
func GuessHostnameWithScheme() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project != "" {
		return fmt.Sprintf("https://%s.appspot.com", project)
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return fmt.Sprintf("http://localhost:%s", port)
}

func IsFormPost(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// DecodeJSON decodes a json request body into dest; an empty body leaves dest untouched.
func DecodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize)).Decode(dest)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid json body: %s", err))
	}
	return nil
}

// DecodeForm decodes a form post into dest using its `form` struct tags.
func DecodeForm(r *http.Request, dest any) error {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)
	}

	var err error
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxRequestBodySize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid form: %s", err))
	}

	err = formcodec.NewDecoder().Decode(dest, r.PostForm)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}
	return nil
}

// DecodeRequest accepts both json bodies and html form posts.
func DecodeRequest(r *http.Request, dest any) error {
	if IsFormPost(r) {
		return DecodeForm(r, dest)
	}
	return DecodeJSON(r, dest)
}

// SafeReturnPath only accepts paths within this site as redirect target.
func SafeReturnPath(returnTo string) string {
	if returnTo == "" || returnTo[0] != '/' || (len(returnTo) > 1 && (returnTo[1] == '/' || returnTo[1] == '\\')) {
		return "/"
	}
	return returnTo
}

// LocalPath strips scheme and host so a push endpoint url can be dispatched in-process.
func LocalPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
