// SPDX-License-Identifier: Apache-2.0

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration carries no HTTP address, leaving no transport surface to
// serve. This is treated as a fatal misconfiguration and causes the
// application to fail at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
