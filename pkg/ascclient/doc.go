// Package ascclient builds App Store Connect API clients that implement the
// asc.Client interface.
//
// It wires configuration, the HTTP dispatcher and the ES256 token issuer on
// top of the resource interfaces and types defined in the asc package.
//
// Quick start
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
//
//	  cli, err := ascclient.New(&asc.Config{
//	    KeyID:          "ABC123DEFG",
//	    IssuerID:       "57246542-96fe-1a63-e053-0824d011072a",
//	    PrivateKeyPath: "AuthKey_ABC123DEFG.p8",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  apps, err := cli.Apps().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = apps
//	}
//
// # Default app
//
// App-scoped operations such as InAppPurchases().List and
// SubscriptionGroups().Create use Config.AppID when no app is given. When
// Config.AppID is empty, New reads it from the APP_ID environment variable.
//
// # Helpers
//
// NewWithKeyFile, NewWithKey and NewWithToken cover the common credential
// shapes without building a Config by hand.
package ascclient
