// Package aci provides types, interfaces, and helpers for working with the
// REST management API of an ACI-style fabric controller.
//
// # Overview
//
// The controller exposes a tree of managed objects addressed by distinguished
// names (dn) and typed by class names (fvTenant, configExportP, ...). Every
// response is wrapped in an envelope whose imdata array holds class wrappers:
//
//	{"imdata": [{"fvTenant": {"attributes": {"dn": "uni/tn-common", "name": "common"}}}]}
//
// This package defines the Client interface, the Executor abstraction used to
// send requests, the envelope codec, and a declarative Mapper that turns class
// wrappers into typed records. A concrete client is provided by the aciclient
// package.
//
// # Getting a client
//
//	cli, err := aciclient.New(ctx, &aci.Config{
//	  Server:   "apic.example.com",
//	  Username: "admin",
//	  Password: os.Getenv("ACI_PASSWORD"),
//	})
//	if err != nil { log.Fatal(err) }
//
//	imdata, err := cli.GetJSON(ctx, "class/fvTenant.json")
//
// # Mapping records
//
// A Mapper is a decode table built once per target type:
//
//	var bdMapper = aci.NewMapper("fvBD",
//	  aci.Field("dn", aci.String, func(b *BD, v string) { b.DN = v }),
//	  aci.Field("name", aci.String, func(b *BD, v string) { b.Name = v }),
//	  aci.Optional(aci.Field("mtu", aci.NumericString, func(b *BD, v uint64) { b.MTU = v })),
//	)
//
//	bds, err := bdMapper.DecodeAll(imdata)
//
// Decoding stops at the first absent or mistyped field and reports it through
// MappingError. New scalar extractors are plain functions with the Extractor
// signature.
//
// # Errors
//
// Login, read, write and mapping failures are distinct sentinels (ErrLoginFailed,
// ErrReadFailed, ErrWriteFailed, ErrMapping) usable with errors.Is. The
// controller's own error wrappers can be inspected with ErrorFromImdata.
package aci
