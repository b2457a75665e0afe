// Copyright Ogrodnik Labs, 2026. All rights reserved.

package ocr

import "errors"

// ErrNotEnabled is returned when OCR is requested but support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
