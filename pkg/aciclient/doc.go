// Package aciclient provides the primary entry point for constructing a
// fabric controller API client that implements the aci.Client interface.
//
// It layers configuration, the HTTPS transport, the session cookie jar and
// login on top of the interfaces and types defined in the aci package.
//
// # Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/aci-client/pkg/aci"
//	  "github.com/fivetwenty-io/aci-client/pkg/aciclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // New logs in immediately and returns no client if login fails.
//	  cli, err := aciclient.New(ctx, &aci.Config{
//	    Server:   "apic.example.com",
//	    Username: "admin",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  tenants, err := cli.Tenants(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = tenants
//	}
//
// # Two-phase construction
//
// NewUnauthenticated builds the client without any network I/O. Call
// Authenticate (or Login, which also returns the login details) before the
// first request; a failed login can simply be retried.
//
// # TLS
//
// Fabric controllers usually present self-signed certificates, so the default
// transport does not verify them. Set Config.VerifyTLS=true to validate the
// certificate chain.
//
// # Testing
//
// Config.Executor replaces the HTTPS transport entirely, which lets tests run
// against canned responses instead of a live controller.
package aciclient
