// Package ir provides the canonical value types and content-addressed
// identities shared by the curveforge packages, plus the record types the
// store persists.
//
// ir imports nothing internal; every other package may import it.
//
// Key constraints:
//   - Canonical values carry no floats. Rates are hashed as their shortest
//     decimal string (see Decimal) so identities are stable across platforms.
//   - Canonical JSON follows RFC 8785 with NFC-normalized strings.
//   - Ordering uses logical sequence numbers, never wall-clock time.
package ir
