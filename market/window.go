package market

// priceWindow keeps a bounded FIFO of recent prices. Readers get copies;
// the buffer itself is only touched under the generator's lock.
type priceWindow struct {
	max int
	buf []float64
}

func newPriceWindow(max int) *priceWindow {
	if max <= 0 {
		max = 16
	}
	return &priceWindow{max: max}
}

func (w *priceWindow) Add(v float64) {
	w.buf = append(w.buf, v)
	if len(w.buf) > w.max {
		w.buf = w.buf[len(w.buf)-w.max:]
	}
}

// Values returns a copy so readers never alias the mutable buffer.
func (w *priceWindow) Values() []float64 {
	out := make([]float64, len(w.buf))
	copy(out, w.buf)
	return out
}

func (w *priceWindow) Len() int {
	return len(w.buf)
}

func (w *priceWindow) Last() float64 {
	if len(w.buf) == 0 {
		return 0
	}
	return w.buf[len(w.buf)-1]
}
