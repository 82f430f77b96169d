package nutrition

import "strings"

// Kind tags the structural variant of a raw analysis payload. The client
// code paths that produce these payloads never agreed on a single shape, so
// classification happens once, up front, and the rest of the package
// switches on the tag.
type Kind int

const (
	// KindStandard is the canonical {foods, total, confidence} shape.
	KindStandard Kind = iota
	// KindLegacyManual is the old manual-save shape with a flat
	// {nutrition: {...}} object.
	KindLegacyManual
	// KindLegacyFoodList has a foods array but no usable total.
	KindLegacyFoodList
	// KindUnknown matches nothing above; the payload is kept verbatim but
	// no structured fields are extracted.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindLegacyManual:
		return "legacy_manual"
	case KindLegacyFoodList:
		return "legacy_food_list"
	default:
		return "unknown"
	}
}

// Classify inspects the structural markers of a decoded payload and returns
// its variant. Order matters: the shapes overlap (a legacy food-list payload
// looks like a truncated standard one), so the first match wins.
func Classify(p map[string]any) Kind {
	foods, hasFoods := p["foods"].([]any)
	total, hasTotal := p["total"].(map[string]any)

	if hasFoods && len(foods) > 0 && hasTotal && total != nil {
		return KindStandard
	}
	if _, ok := p["nutrition"].(map[string]any); ok {
		return KindLegacyManual
	}
	if hasFoods && len(foods) > 0 {
		return KindLegacyFoodList
	}
	return KindUnknown
}

// Provenance values stored in the ProcessedBy column.
const (
	SourceBackground = "background_service"
	SourceManual     = "manual_app"
)

// BackgroundCaptureMarker is the device-info substring the unattended
// Android gallery-capture client identifies itself with.
const BackgroundCaptureMarker = "Android Background Service"

// ClassifySource resolves record provenance. A device-info string carrying
// the background-capture marker always wins, regardless of payload shape;
// otherwise the shape-derived default stands. Manual and automated captures
// share the standard wire shape, so the marker is the only reliable signal
// for those.
func ClassifySource(deviceInfo, shapeDefault string) string {
	if deviceInfo != "" && strings.Contains(deviceInfo, BackgroundCaptureMarker) {
		return SourceBackground
	}
	return shapeDefault
}
