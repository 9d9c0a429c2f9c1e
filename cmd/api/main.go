// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/cmatts/genealogy/internal/api"
	"github.com/cmatts/genealogy/internal/api/genealogyservice"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/pkg/errors"
)

var (
	port        = flag.Int("port", 8080, "port on which to serve")
	concurrency = flag.Int("concurrency", 8, "maximum parallel parent lookups per siblings request")
)

var storecfg = store.Config{}

// openStore opens the configured backend once and shares it across requests.
var openStore = sync.OnceValues(func() (store.ReadWriter, error) {
	rw, _, err := storecfg.Open(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	return rw, nil
})

func SiblingsInit(ctx context.Context) (*genealogyservice.SiblingsDeps, error) {
	rw, err := openStore()
	if err != nil {
		return nil, err
	}
	return &genealogyservice.SiblingsDeps{Store: rw, Concurrency: *concurrency}, nil
}

func ReaderInit(ctx context.Context) (*genealogyservice.ReaderDeps, error) {
	rw, err := openStore()
	if err != nil {
		return nil, err
	}
	return &genealogyservice.ReaderDeps{Store: rw}, nil
}

func VersionInit(ctx context.Context) (*genealogyservice.VersionDeps, error) {
	return &genealogyservice.VersionDeps{}, nil
}

func main() {
	storecfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := storecfg.Validate(); err != nil {
		log.Fatalln(errors.Wrap(err, "invalid store configuration"))
	}
	if _, err := openStore(); err != nil {
		log.Fatalln(err)
	}
	http.HandleFunc("/siblings", api.Handler(SiblingsInit, genealogyservice.Siblings))
	http.HandleFunc("/person", api.Handler(ReaderInit, genealogyservice.Person))
	http.HandleFunc("/people", api.Handler(ReaderInit, genealogyservice.People))
	http.HandleFunc("/facts", api.Handler(ReaderInit, genealogyservice.Facts))
	http.HandleFunc("/version", api.Handler(VersionInit, genealogyservice.Version))
	log.Printf("serving %s store on :%d", storecfg.Backend, *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		log.Fatalln(err)
	}
}
