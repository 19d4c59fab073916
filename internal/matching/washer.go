package matching

import (
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

const washerClearanceMm = 1.0

// FindWashers returns washers of one system whose hole fits the bolt: an
// inner diameter from the bolt diameter up to 1mm larger.
func (e *Engine) FindWashers(diameterMm float64, system model.System) []model.Washer {
	var washers []model.Washer
	for _, w := range e.table.Washers(system) {
		if w.InnerDiameterMm >= diameterMm && w.InnerDiameterMm <= diameterMm+washerClearanceMm {
			washers = append(washers, w)
		}
	}
	return washers
}
