package classify

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// ClassMetrics holds the evaluation results of one class.
type ClassMetrics struct {
	Label     bool    `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report holds the evaluation results on a test set.
type Report struct {
	Accuracy float64 `json:"accuracy"`

	// Negative class first
	Classes [2]ClassMetrics `json:"classes"`
}

// Evaluate predicts each test example and compares it with its label.
func Evaluate(c *Classifier, test []Example) Report {
	var rp Report
	if len(test) == 0 {
		return rp
	}

	predicted := make([]bool, len(test))
	correct := 0
	for i, e := range test {
		predicted[i] = c.Predict(e.Features)
		if predicted[i] == e.Label {
			correct++
		}
	}
	rp.Accuracy = float64(correct) / float64(len(test))

	for i, label := range []bool{false, true} {
		rp.Classes[i] = metrics(label, predicted, test)
	}
	return rp
}

func metrics(label bool, predicted []bool, test []Example) ClassMetrics {
	tp, fp, fn := 0, 0, 0
	for i, e := range test {
		switch {
		case predicted[i] == label && e.Label == label:
			tp++
		case predicted[i] == label:
			fp++
		case e.Label == label:
			fn++
		}
	}

	m := ClassMetrics{Label: label, Support: tp + fn}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Write prints the report as a table.
func (rp Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\tprecision\trecall\tf1-score\tsupport\t\n")
	for _, m := range rp.Classes {
		fmt.Fprintf(tw, "%t\t%.2f\t%.2f\t%.2f\t%d\t\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nAccuracy: %.4f\n", rp.Accuracy)
	return err
}
