// Package asc provides types, interfaces, and helpers for working with the
// App Store Connect API.
//
// # Overview
//
// The asc package defines the JSON:API document types (Document, Resource and
// the per-resource attribute structs), the request documents sent by create
// operations, and the interfaces of the resource clients (AppsClient,
// InAppPurchasesClient, SubscriptionGroupsClient, ...). A concrete
// implementation is provided by the ascclient package, which wires
// configuration, the HTTP dispatcher and the token issuer.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/asc/pkg/asc"
//	  "github.com/fivetwenty-io/asc/pkg/ascclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ascclient.NewWithKeyFile("ABC123DEFG", "issuer-id", "AuthKey_ABC123DEFG.p8")
//	  if err != nil { log.Fatal(err) }
//
//	  groups, err := cli.SubscriptionGroups().List(ctx, "1234567890")
//	  if err != nil { log.Fatal(err) }
//	  _ = groups
//	}
//
// # Raw calls
//
// Client.Fetch performs a single authenticated request against any API path
// and returns the Response without interpreting the status code. Responses
// sent as application/a-gzip (sales and finance reports) are inflated before
// they are returned and flagged with Response.Decompressed.
//
// # Errors
//
// Non-2xx responses from resource clients are returned as *ResponseError,
// which carries the status code and the decoded error entries. Use IsNotFound,
// IsUnauthorized and IsForbidden for common checks. Missing arguments are
// reported as *InvalidParameterError before any network I/O. Token problems
// surface as *CredentialReadError or *SigningError, transport failures as
// *TransportError, and undecodable archive payloads as *DecodeError.
//
// # Logging
//
// Config.Logger accepts any implementation of Logger. NewLogrLogger adapts a
// logr.Logger. Bearer tokens and key material are never logged.
package asc
