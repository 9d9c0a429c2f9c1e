// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package api exposes request handlers over HTTP and provides the matching
// client stubs.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmatts/genealogy/internal/api/form"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// A Message is a request/response type, used in Handler and Stub.
type Message interface {
	Validate() error
}

// Dependencies is a marker type for a handler's dependency container.
type Dependencies any

type InitT[D Dependencies] func(context.Context) (D, error)
type HandlerT[I Message, O any, D Dependencies] func(context.Context, I, D) (*O, error)
type StubT[I Message, O any] func(context.Context, I) (*O, error)

// NoDeps is an empty dependency container.
type NoDeps struct{}

func NoDepsInit(context.Context) (*NoDeps, error) { return &NoDeps{}, nil }

// BasicClient is a simpler http.Client that only requires a Do method.
type BasicClient interface {
	Do(*http.Request) (*http.Response, error)
}

var _ BasicClient = http.DefaultClient

var ErrNotOK = errors.New("non-OK response")

// Stub returns a client for the Handler served at u.
func Stub[I Message, O any](client BasicClient, u *url.URL) StubT[I, O] {
	return func(ctx context.Context, i I) (*O, error) {
		if err := i.Validate(); err != nil {
			return nil, errors.Wrap(err, "validating request")
		}
		values, err := form.Marshal(i)
		if err != nil {
			return nil, errors.Wrap(err, "serializing request")
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(values.Encode()))
		if err != nil {
			return nil, errors.Wrap(err, "building http request")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := client.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "making http request")
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return nil, AsStatus(httpToGRPC(resp.StatusCode), errors.Wrap(errors.Wrap(ErrNotOK, resp.Status), strings.TrimSpace(string(b))))
		}
		var o O
		if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
			return nil, errors.Wrap(err, "decoding response")
		}
		return &o, nil
	}
}

// AsStatus creates a gRPC status with the given code and error message.
func AsStatus(code codes.Code, err error) error {
	return status.New(code, err.Error()).Err()
}

var grpcToHTTP = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           499, // Client Closed Request
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}

// httpToGRPC recovers the most likely code for an HTTP status. Statuses
// shared by several codes map to the first listed above.
func httpToGRPC(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	default:
		return codes.Unknown
	}
}

// Handler serves handler over HTTP. Requests are decoded from form values
// and responses are written as JSON.
func Handler[I Message, O any, D Dependencies](initDeps InitT[D], handler HandlerT[I, O, D]) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rid := uuid.New().String()
		if err := r.ParseForm(); err != nil {
			log.Println(rid, errors.Wrap(err, "parsing form"))
			http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		var req I
		if err := form.Unmarshal(r.Form, &req); err != nil {
			log.Println(rid, errors.Wrap(err, "parsing request"))
			http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		log.Printf("%s received request %s: %+v", rid, r.URL.Path, req)
		if err := req.Validate(); err != nil {
			log.Println(rid, errors.Wrap(err, "validating request"))
			http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		deps, err := initDeps(ctx)
		if err != nil {
			log.Println(rid, errors.Wrap(err, "initializing dependencies"))
			http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		o, err := handler(ctx, req, deps)
		s := status.Convert(err)
		httpStatus, ok := grpcToHTTP[s.Code()]
		if !ok {
			log.Printf("%s unknown error code: %s", rid, s.Code())
			httpStatus = http.StatusInternalServerError
		}
		if httpStatus != http.StatusOK {
			log.Println(rid, s.Err())
			// NOTE: s.Message() avoids the verbose rendering of an error that
			// was already a grpc status.
			http.Error(rw, s.Message(), httpStatus)
			return
		}
		if o != nil {
			rw.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(rw).Encode(o); err != nil {
				log.Println(rid, errors.Wrap(err, "encoding response"))
				http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}
	}
}
