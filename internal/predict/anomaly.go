package predict

import (
	"math"

	"FinanceSentinel/internal/model"
)

// detectAnomalies flags expense transactions whose magnitude is more
// than the configured number of standard deviations away from the mean
// expense. Fewer than two expenses, or a flat distribution, yields no
// anomalies. Input order is preserved in the output.
func (m *Model) detectAnomalies(txns []model.Transaction) []model.Anomaly {
	var expenses []model.Transaction
	for _, t := range txns {
		if t.Amount < 0 {
			expenses = append(expenses, t)
		}
	}
	if len(expenses) < 2 {
		return nil
	}

	var sum float64
	for _, t := range expenses {
		sum += float64(-t.Amount)
	}
	mean := sum / float64(len(expenses))

	var sumSq float64
	for _, t := range expenses {
		d := float64(-t.Amount) - mean
		sumSq += d * d
	}
	// Sample standard deviation; n >= 2 is guaranteed above.
	std := math.Sqrt(sumSq / float64(len(expenses)-1))
	if std == 0 {
		return nil
	}

	var anomalies []model.Anomaly
	for _, t := range expenses {
		z := math.Abs(float64(-t.Amount)-mean) / std
		if z <= m.cfg.AnomalyZScore {
			continue
		}
		kind := model.AnomalyLowSpending
		if float64(-t.Amount) > mean {
			kind = model.AnomalyHighSpending
		}
		anomalies = append(anomalies, model.Anomaly{
			TransactionID: t.ID,
			Timestamp:     t.Timestamp,
			Amount:        t.Amount,
			Category:      t.Category,
			Description:   t.Description,
			ZScore:        z,
			Kind:          kind,
		})
	}
	return anomalies
}
