package report

import "strings"

// ClothingAdvice derives what to wear from tomorrow's max/min and the
// precipitation sum. maxC/minC are nil when the forecast omitted them, in
// which case no temperature advice can be given.
func ClothingAdvice(maxC, minC *float64, precipMM float64, umbrellaMM float64) string {
	var adv []string

	if maxC != nil && minC != nil {
		avg := (*maxC + *minC) / 2
		switch {
		case avg >= 28:
			adv = append(adv, "短袖/薄外套")
		case avg >= 20:
			adv = append(adv, "長袖/薄外套")
		default:
			adv = append(adv, "外套/保暖衣物")
		}
	} else {
		adv = append(adv, "暫無建議")
	}

	if precipMM > umbrellaMM {
		adv = append(adv, "帶傘或雨具")
	}

	return strings.Join(adv, "，")
}
