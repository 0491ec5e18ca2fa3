package lighthouse

import (
	"carbonaudit/pkg/domain"
	"math"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ErrRuntime is returned by ParseReport when Lighthouse recorded a runtime
// error instead of audit results.
var ErrRuntime = errors.New("lighthouse runtime error")

const (
	auditFCP             = "first-contentful-paint"
	auditSpeedIndex      = "speed-index"
	auditLCP             = "largest-contentful-paint"
	auditInteractive     = "interactive"
	auditTBT             = "total-blocking-time"
	auditCLS             = "cumulative-layout-shift"
	auditTotalByteWeight = "total-byte-weight"
	auditNetworkRequests = "network-requests"
)

// rawReport holds the subset of the Lighthouse result the service reads.
// Missing values stay nil.
type rawReport struct {
	scores       map[string]*float64
	numeric      map[string]*float64
	requests     int
	runtimeError string
}

// ParseReport extracts normalised metrics from a Lighthouse JSON result.
// Category scores default to 0, absent timing metrics are nil, and timings
// are converted from milliseconds to seconds with two decimals.
func ParseReport(raw []byte) (domain.Lighthouse, error) {
	r := rawReport{
		scores:  map[string]*float64{},
		numeric: map[string]*float64{},
	}
	if err := r.decode(jx.DecodeBytes(raw)); err != nil {
		return domain.Lighthouse{}, errors.Wrap(err, "decode lighthouse report")
	}
	if r.runtimeError != "" {
		return domain.Lighthouse{}, errors.Wrap(ErrRuntime, r.runtimeError)
	}

	return domain.Lighthouse{
		Performance:            score(r.scores["performance"]),
		Accessibility:          score(r.scores["accessibility"]),
		BestPractices:          score(r.scores["best-practices"]),
		SEO:                    score(r.scores["seo"]),
		FirstContentfulPaint:   seconds(r.numeric[auditFCP]),
		SpeedIndex:             seconds(r.numeric[auditSpeedIndex]),
		LargestContentfulPaint: seconds(r.numeric[auditLCP]),
		TimeToInteractive:      seconds(r.numeric[auditInteractive]),
		TotalBlockingTime:      millis(r.numeric[auditTBT]),
		CumulativeLayoutShift:  orZero(r.numeric[auditCLS]),
		TotalByteWeight:        int64(math.Round(orZero(r.numeric[auditTotalByteWeight]))),
		RequestCount:           r.requests,
	}, nil
}

func (r *rawReport) decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "categories":
			return d.ObjBytes(func(d *jx.Decoder, category []byte) error {
				name := string(category)

				return field(d, "score", func(d *jx.Decoder) error {
					v, err := optFloat(d)
					r.scores[name] = v

					return err
				})
			})
		case "audits":
			return d.ObjBytes(func(d *jx.Decoder, id []byte) error {
				return r.decodeAudit(d, string(id))
			})
		case "runtimeError":
			return r.decodeRuntimeError(d)
		default:
			return d.Skip()
		}
	})
}

func (r *rawReport) decodeAudit(d *jx.Decoder, id string) error {
	switch id {
	case auditFCP, auditSpeedIndex, auditLCP, auditInteractive, auditTBT, auditCLS, auditTotalByteWeight:
		return field(d, "numericValue", func(d *jx.Decoder) error {
			v, err := optFloat(d)
			r.numeric[id] = v

			return err
		})
	case auditNetworkRequests:
		return field(d, "details", func(d *jx.Decoder) error {
			return field(d, "items", func(d *jx.Decoder) error {
				if d.Next() != jx.Array {
					return d.Skip()
				}

				return d.Arr(func(d *jx.Decoder) error {
					r.requests++

					return d.Skip()
				})
			})
		})
	default:
		return d.Skip()
	}
}

func (r *rawReport) decodeRuntimeError(d *jx.Decoder) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}

	var code, message string
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "code":
			s, err := optString(d)
			code = s

			return err
		case "message":
			s, err := optString(d)
			message = s

			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return err
	}

	switch {
	case code == "" && message == "":
	case message == "":
		r.runtimeError = code
	default:
		r.runtimeError = message
	}

	return nil
}

// field decodes the named key of the object at d with fn and skips the rest.
// Non-object values are skipped.
func field(d *jx.Decoder, name string, fn func(d *jx.Decoder) error) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}

	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != name {
			return d.Skip()
		}

		return fn(d)
	})
}

func optFloat(d *jx.Decoder) (*float64, error) {
	if d.Next() != jx.Number {
		return nil, d.Skip()
	}

	v, err := d.Float64()
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func optString(d *jx.Decoder) (string, error) {
	if d.Next() != jx.String {
		return "", d.Skip()
	}

	return d.Str()
}

func score(v *float64) float64 {
	return domain.Clamp01(orZero(v))
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func seconds(ms *float64) *float64 {
	if ms == nil {
		return nil
	}
	s := domain.Round2(*ms / 1000)

	return &s
}

func millis(ms *float64) *int64 {
	if ms == nil {
		return nil
	}
	v := int64(math.Round(*ms))

	return &v
}
