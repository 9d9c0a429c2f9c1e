// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package form maps request structs to and from URL form values.
//
// Fields are named by a `form:"name[,required]"` tag, defaulting to the
// lowercased field name. Supported field kinds are string and bool.
package form

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidType      = errors.New("invalid type")
	ErrUnsupportedField = errors.New("unsupported field")
	ErrMissingRequired  = errors.New("missing required field")
)

type fieldOptions struct {
	name     string
	required bool
}

func options(field reflect.StructField) fieldOptions {
	var opt fieldOptions
	parts := strings.Split(field.Tag.Get("form"), ",")
	if opt.name = parts[0]; opt.name == "" {
		opt.name = strings.ToLower(field.Name)
	}
	for _, val := range parts[1:] {
		if val == "required" {
			opt.required = true
		}
	}
	return opt
}

func structValue(v reflect.Value) (reflect.Value, error) {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidType
	}
	return v, nil
}

// Marshal encodes the non-zero exported fields of in.
func Marshal(in any) (url.Values, error) {
	tvalue, err := structValue(reflect.ValueOf(in))
	if err != nil {
		return nil, err
	}
	ttype := tvalue.Type()
	v := url.Values{}
	for i := range ttype.NumField() {
		field, value := ttype.Field(i), tvalue.Field(i)
		if !field.IsExported() {
			continue
		} else if field.Anonymous {
			return nil, errors.Wrap(ErrUnsupportedField, field.Name)
		}
		if value.IsZero() {
			continue
		}
		opt := options(field)
		switch field.Type.Kind() {
		case reflect.String:
			v.Set(opt.name, value.String())
		case reflect.Bool:
			v.Set(opt.name, strconv.FormatBool(value.Bool()))
		default:
			return nil, errors.Wrap(ErrUnsupportedField, field.Name)
		}
	}
	return v, nil
}

// Unmarshal decodes v into the struct pointed to by out.
func Unmarshal(v url.Values, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidType
	}
	tvalue, err := structValue(rv)
	if err != nil {
		return err
	}
	ttype := tvalue.Type()
	for i := range ttype.NumField() {
		field, value := ttype.Field(i), tvalue.Field(i)
		if !field.IsExported() {
			continue
		} else if field.Anonymous {
			return errors.Wrap(ErrUnsupportedField, field.Name)
		}
		opt := options(field)
		urlval := v.Get(opt.name)
		if urlval == "" {
			if opt.required {
				return errors.Wrap(ErrMissingRequired, opt.name)
			}
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			value.SetString(urlval)
		case reflect.Bool:
			b, err := strconv.ParseBool(urlval)
			if err != nil {
				return errors.Wrapf(err, "parsing %s", opt.name)
			}
			value.SetBool(b)
		default:
			return errors.Wrap(ErrUnsupportedField, field.Name)
		}
	}
	return nil
}
