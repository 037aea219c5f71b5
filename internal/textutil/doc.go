// Package textutil provides text helpers shared by field normalization,
// title display and export naming.
//
// The script helpers split bilingual strings into Han ideograph runs and
// runs of other letters and digits. Han detection uses the Unicode Han
// script, so traditional, simplified and extension ideographs all count.
package textutil
