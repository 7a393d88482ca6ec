// Package pricing computes shipment prices from weight-banded rate tables.
//
// Business rules:
//   - Twelve fixed weight bands (in pounds): [0,10], (10,25], (25,50], (50,75],
//     (75,100], (100,125], (125,150], (150,175], (175,200], (200,500],
//     (500,1000], (1000,∞).
//   - Bands 1-9 charge a flat rate per line item.
//   - Bands 10-12 are cumulative per pound above 200, 500 and 1000 lb on top of band 9.
//   - The weight priced is unit weight times quantity (one price per line item).
//   - A customer discount may replace any subset of bands; each band is
//     resolved on its own, falling back to the global rate when absent.
//   - Every monetary intermediate is rounded half-up to two decimals.
//
// The package has no dependencies on the rest of the domain.
package pricing
