package reference

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"gopkg.in/yaml.v3"
)

type metricDocument struct {
	Threads map[string]metricRow       `yaml:"metric_threads"`
	Washers map[string]metricWasherRow `yaml:"washers"`
}

type metricRow struct {
	FinePitch       pitchList        `yaml:"fine_pitch"`
	StandardLengths []float64        `yaml:"standard_lengths"`
	HeadTypes       []model.HeadType `yaml:"head_types"`
	Diameter        float64          `yaml:"diameter"`
	CoarsePitch     float64          `yaml:"coarse_pitch"`
}

type metricWasherRow struct {
	InnerDiameter float64 `yaml:"inner_diameter"`
	OuterDiameter float64 `yaml:"outer_diameter"`
	Thickness     float64 `yaml:"thickness"`
}

type whitworthDocument struct {
	Threads map[string]whitworthRow       `yaml:"whitworth_threads"`
	Washers map[string]whitworthWasherRow `yaml:"washers"`
}

type whitworthRow struct {
	Subtype         string           `yaml:"subtype"`
	StandardLengths []float64        `yaml:"standard_lengths"`
	HeadTypes       []model.HeadType `yaml:"head_types"`
	DiameterInch    float64          `yaml:"diameter_inch"`
	DiameterMm      float64          `yaml:"diameter_mm"`
	ThreadsPerInch  int              `yaml:"threads_per_inch"`
}

type whitworthWasherRow struct {
	InnerDiameterInch float64 `yaml:"inner_diameter_inch"`
	InnerDiameterMm   float64 `yaml:"inner_diameter_mm"`
	OuterDiameterInch float64 `yaml:"outer_diameter_inch"`
	OuterDiameterMm   float64 `yaml:"outer_diameter_mm"`
	ThicknessInch     float64 `yaml:"thickness_inch"`
	ThicknessMm       float64 `yaml:"thickness_mm"`
}

type headTypeDocument struct {
	HeadTypes map[model.HeadType]headTypeRow `yaml:"head_types"`
}

type headTypeRow struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Tool            string   `yaml:"tool"`
	Characteristics []string `yaml:"characteristics"`
}

// pitchList accepts either a single pitch or a sequence of pitches.
type pitchList []float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *pitchList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*p = nil
			return nil
		}
		var single float64
		if err := value.Decode(&single); err != nil {
			return fmt.Errorf("fine pitch: %w", err)
		}
		*p = pitchList{single}
		return nil
	case yaml.SequenceNode:
		var many []float64
		if err := value.Decode(&many); err != nil {
			return fmt.Errorf("fine pitch list: %w", err)
		}
		*p = many
		return nil
	default:
		return fmt.Errorf("fine pitch must be a number or a list, line %d", value.Line)
	}
}

func parseMetric(data []byte) ([]model.ThreadStandard, []model.Washer, error) {
	var doc metricDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: metric table: %w", common.ErrInvalidReference, err)
	}
	if len(doc.Threads) == 0 {
		return nil, nil, fmt.Errorf("%w: metric table has no threads", common.ErrInvalidReference)
	}

	standards := make([]model.ThreadStandard, 0, len(doc.Threads))
	for designation, row := range doc.Threads {
		fine := make([]float64, len(row.FinePitch))
		copy(fine, row.FinePitch)
		standards = append(standards, model.ThreadStandard{
			Designation:       designation,
			System:            model.SystemMetric,
			NominalDiameterMm: row.Diameter,
			StandardLengthsMm: row.StandardLengths,
			HeadTypes:         row.HeadTypes,
			Metric: &model.MetricPitch{
				CoarsePitchMm: row.CoarsePitch,
				FinePitchesMm: fine,
			},
		})
	}

	washers := make([]model.Washer, 0, len(doc.Washers))
	for designation, row := range doc.Washers {
		washers = append(washers, model.Washer{
			Designation:     designation,
			System:          model.SystemMetric,
			InnerDiameterMm: row.InnerDiameter,
			OuterDiameterMm: row.OuterDiameter,
			ThicknessMm:     row.Thickness,
		})
	}

	return standards, washers, nil
}

func parseWhitworth(data []byte) ([]model.ThreadStandard, []model.Washer, error) {
	var doc whitworthDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: whitworth table: %w", common.ErrInvalidReference, err)
	}
	if len(doc.Threads) == 0 {
		return nil, nil, fmt.Errorf("%w: whitworth table has no threads", common.ErrInvalidReference)
	}

	standards := make([]model.ThreadStandard, 0, len(doc.Threads))
	for designation, row := range doc.Threads {
		subtype := model.SubtypeFromDesignation(designation)
		if row.Subtype != "" {
			subtype = model.WhitworthSubtype(row.Subtype)
			if subtype != model.SubtypeBSW && subtype != model.SubtypeBSF {
				return nil, nil, fmt.Errorf("%w: %s: unknown subtype %q", common.ErrInvalidReference, designation, row.Subtype)
			}
		}

		diameterMm := row.DiameterMm
		if diameterMm == 0 && row.DiameterInch > 0 {
			diameterMm = row.DiameterInch * model.MmPerInch
		}

		standards = append(standards, model.ThreadStandard{
			Designation:       designation,
			System:            model.SystemWhitworth,
			NominalDiameterMm: diameterMm,
			StandardLengthsMm: row.StandardLengths,
			HeadTypes:         row.HeadTypes,
			Whitworth: &model.WhitworthPitch{
				ThreadsPerInch: row.ThreadsPerInch,
				Subtype:        subtype,
				DiameterInch:   row.DiameterInch,
			},
		})
	}

	washers := make([]model.Washer, 0, len(doc.Washers))
	for designation, row := range doc.Washers {
		washers = append(washers, model.Washer{
			Designation:     designation,
			System:          model.SystemWhitworth,
			InnerDiameterMm: row.InnerDiameterMm,
			OuterDiameterMm: row.OuterDiameterMm,
			ThicknessMm:     row.ThicknessMm,
		})
	}

	return standards, washers, nil
}

func parseHeadTypes(data []byte) ([]model.HeadTypeInfo, error) {
	var doc headTypeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: head type table: %w", common.ErrInvalidReference, err)
	}

	heads := make([]model.HeadTypeInfo, 0, len(doc.HeadTypes))
	for tag, row := range doc.HeadTypes {
		if row.Name == "" {
			return nil, fmt.Errorf("%w: head type %q has no name", common.ErrInvalidReference, tag)
		}
		heads = append(heads, model.HeadTypeInfo{
			Type:            tag,
			Name:            row.Name,
			Description:     row.Description,
			Tool:            row.Tool,
			Characteristics: row.Characteristics,
		})
	}
	return heads, nil
}
