// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package form

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

type testStruct struct {
	ID     string `form:"id,required"`
	Legacy bool   `form:"legacy"`
	Plain  string
	hidden string
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    url.Values
		wantErr error
	}{
		{
			name:  "all kinds",
			input: testStruct{ID: "8", Legacy: true, Plain: "x"},
			want: url.Values{
				"id":     {"8"},
				"legacy": {"true"},
				"plain":  {"x"},
			},
		},
		{
			name:  "pointer with zero fields omitted",
			input: &testStruct{ID: "8", hidden: "y"},
			want:  url.Values{"id": {"8"}},
		},
		{
			name:  "siblings request",
			input: schema.SiblingsRequest{ID: "1", UnknownParentFirst: true},
			want:  url.Values{"id": {"1"}, "unknown_parent_first": {"true"}},
		},
		{
			name:    "not a struct",
			input:   "id=8",
			wantErr: ErrInvalidType,
		},
		{
			name:    "unsupported kind",
			input:   struct{ M map[string]string }{M: map[string]string{"a": "b"}},
			wantErr: ErrUnsupportedField,
		},
		{
			name:    "int unsupported",
			input:   struct{ N int }{N: 3},
			wantErr: ErrUnsupportedField,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Marshal() error = %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Marshal() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   url.Values
		want    testStruct
		wantErr bool
	}{
		{
			name:  "all kinds",
			input: url.Values{"id": {"8"}, "legacy": {"1"}, "plain": {"x"}},
			want:  testStruct{ID: "8", Legacy: true, Plain: "x"},
		},
		{
			name:  "optional fields absent",
			input: url.Values{"id": {"8"}},
			want:  testStruct{ID: "8"},
		},
		{
			name:    "missing required",
			input:   url.Values{"legacy": {"true"}},
			wantErr: true,
		},
		{
			name:    "bad bool",
			input:   url.Values{"id": {"8"}, "legacy": {"maybe"}},
			want:    testStruct{ID: "8"},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got testStruct
			err := Unmarshal(tc.input, &got)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(testStruct{})); diff != "" {
				t.Errorf("Unmarshal() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalMissingRequiredIsTyped(t *testing.T) {
	var req schema.FactsRequest
	err := Unmarshal(url.Values{}, &req)
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("Unmarshal() error = %v, want %v", err, ErrMissingRequired)
	}
}

func TestUnmarshalRequiresPointer(t *testing.T) {
	if err := Unmarshal(url.Values{}, testStruct{}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Unmarshal(non-pointer) error = %v, want %v", err, ErrInvalidType)
	}
}

func TestOptions(t *testing.T) {
	type tagged struct {
		Field1 string `form:"custom_name,required"`
		Field2 string
		Field3 string `form:",required"`
	}
	tests := []struct {
		name  string
		field reflect.StructField
		want  fieldOptions
	}{
		{"custom name and required", reflect.TypeOf(tagged{}).Field(0), fieldOptions{name: "custom_name", required: true}},
		{"default name", reflect.TypeOf(tagged{}).Field(1), fieldOptions{name: "field2"}},
		{"default name required", reflect.TypeOf(tagged{}).Field(2), fieldOptions{name: "field3", required: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, options(tc.field), cmp.AllowUnexported(fieldOptions{})); diff != "" {
				t.Errorf("options() diff (-want +got):\n%s", diff)
			}
		})
	}
}
