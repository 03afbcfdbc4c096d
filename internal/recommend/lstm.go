// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package recommend

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/suadeo-dev/suadeo/internal/vector"
)

// ErrEmptySequence is returned when a prediction or training step receives
// no input vectors.
var ErrEmptySequence = errors.New("recommend: empty input sequence")

// LSTMConfig contains configuration for the sequence model.
type LSTMConfig struct {
	// InputSize is the embedding dimension. Inputs, targets and
	// predictions all share it.
	InputSize int

	// HiddenSize is the hidden state dimension per layer.
	HiddenSize int

	// NumLayers is the number of stacked recurrent layers.
	NumLayers int

	// LearningRate is the Adam step size.
	LearningRate float64

	// Seed fixes weight initialization for reproducible models.
	Seed int64
}

// DefaultLSTMConfig returns the default model shape for the given embedding
// dimension.
func DefaultLSTMConfig(inputSize int) LSTMConfig {
	return LSTMConfig{
		InputSize:    inputSize,
		HiddenSize:   64,
		NumLayers:    2,
		LearningRate: 0.001,
		Seed:         42,
	}
}

// LSTM is a stacked long short-term memory network that maps a sequence of
// event embeddings to a predicted next embedding. A final dense layer
// projects the top hidden state back to the embedding dimension, so the
// prediction lives in the same space as the candidates it is ranked
// against.
//
// Training minimizes mean squared error against a target embedding using
// Adam, one incremental step per rated event.
type LSTM struct {
	BaseAlgorithm
	cfg LSTMConfig

	layers []*lstmLayer
	outW   *mat
	outB   *mat

	// adamStep counts optimizer steps for bias correction.
	adamStep int
}

// NewLSTM builds a model with freshly initialized weights.
func NewLSTM(cfg LSTMConfig) (*LSTM, error) {
	if cfg.InputSize <= 0 {
		return nil, errors.New("recommend: input size must be positive")
	}
	if cfg.HiddenSize <= 0 || cfg.NumLayers <= 0 {
		return nil, errors.New("recommend: hidden size and layer count must be positive")
	}
	if cfg.LearningRate <= 0 {
		return nil, errors.New("recommend: learning rate must be positive")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	m := &LSTM{
		BaseAlgorithm: NewBaseAlgorithm("lstm"),
		cfg:           cfg,
		layers:        make([]*lstmLayer, cfg.NumLayers),
	}
	in := cfg.InputSize
	for l := range m.layers {
		m.layers[l] = newLSTMLayer(in, cfg.HiddenSize, rng)
		in = cfg.HiddenSize
	}
	m.outW = newMat(cfg.InputSize, cfg.HiddenSize, rng, initScale(cfg.HiddenSize))
	m.outB = newMat(cfg.InputSize, 1, nil, 0)
	return m, nil
}

// InputSize returns the embedding dimension the model operates in.
func (m *LSTM) InputSize() int {
	return m.cfg.InputSize
}

// Predict runs the sequence through the network and returns the projected
// next embedding. The model predicts from initial weights too; an untrained
// prediction is just a poor one, not an error.
func (m *LSTM) Predict(seq []vector.Vector) (vector.Vector, error) {
	if err := m.checkSequence(seq); err != nil {
		return nil, err
	}
	m.acquirePredictLock()
	defer m.releasePredictLock()
	out, _ := m.forward(seq, false)
	return out, nil
}

// TrainStep performs one forward-backward pass against the target embedding
// and applies an Adam update. It returns the mean squared error before the
// update.
func (m *LSTM) TrainStep(seq []vector.Vector, target vector.Vector) (float64, error) {
	if err := m.checkSequence(seq); err != nil {
		return 0, err
	}
	if len(target) != m.cfg.InputSize {
		return 0, fmt.Errorf("recommend: target dimension %d, model expects %d", len(target), m.cfg.InputSize)
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	out, caches := m.forward(seq, true)

	n := float64(m.cfg.InputSize)
	loss := 0.0
	dout := make([]float64, m.cfg.InputSize)
	for i := range out {
		diff := out[i] - target[i]
		loss += diff * diff
		dout[i] = 2 * diff / n
	}
	loss /= n

	m.backward(seq, caches, dout)
	m.applyAdam()
	m.markTrained()
	return loss, nil
}

func (m *LSTM) checkSequence(seq []vector.Vector) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	for t, v := range seq {
		if len(v) != m.cfg.InputSize {
			return fmt.Errorf("recommend: sequence element %d has dimension %d, model expects %d",
				t, len(v), m.cfg.InputSize)
		}
	}
	return nil
}

// forward runs the full sequence and projects the final top hidden state.
// With keepCaches it records per-step activations for backpropagation.
func (m *LSTM) forward(seq []vector.Vector, keepCaches bool) ([]float64, [][]stepCache) {
	h := make([][]float64, len(m.layers))
	c := make([][]float64, len(m.layers))
	for l := range m.layers {
		h[l] = make([]float64, m.cfg.HiddenSize)
		c[l] = make([]float64, m.cfg.HiddenSize)
	}

	var caches [][]stepCache
	if keepCaches {
		caches = make([][]stepCache, len(m.layers))
		for l := range caches {
			caches[l] = make([]stepCache, len(seq))
		}
	}

	for t := range seq {
		x := []float64(seq[t])
		for l, layer := range m.layers {
			var cache *stepCache
			if keepCaches {
				cache = &caches[l][t]
			}
			h[l], c[l] = layer.step(x, h[l], c[l], cache)
			x = h[l]
		}
	}

	top := h[len(h)-1]
	out := make([]float64, m.cfg.InputSize)
	for i := 0; i < m.cfg.InputSize; i++ {
		sum := m.outB.w[i]
		row := m.outW.w[i*m.cfg.HiddenSize:]
		for j := 0; j < m.cfg.HiddenSize; j++ {
			sum += row[j] * top[j]
		}
		out[i] = sum
	}
	return out, caches
}

// backward runs truncated-nowhere BPTT over the whole sequence, accumulating
// gradients into each weight matrix.
func (m *LSTM) backward(seq []vector.Vector, caches [][]stepCache, dout []float64) {
	H := m.cfg.HiddenSize
	T := len(seq)
	top := len(m.layers) - 1

	// Dense output layer gradients, and the hidden-state gradient it
	// induces on the top layer at the final step.
	topLast := caches[top][T-1].h
	dhTop := make([]float64, H)
	for i := 0; i < m.cfg.InputSize; i++ {
		m.outB.g[i] += dout[i]
		row := i * H
		for j := 0; j < H; j++ {
			m.outW.g[row+j] += dout[i] * topLast[j]
			dhTop[j] += m.outW.w[row+j] * dout[i]
		}
	}

	dhNext := make([][]float64, len(m.layers))
	dcNext := make([][]float64, len(m.layers))
	for l := range m.layers {
		dhNext[l] = make([]float64, H)
		dcNext[l] = make([]float64, H)
	}
	copy(dhNext[top], dhTop)

	for t := T - 1; t >= 0; t-- {
		// dx flowing from the layer above at this timestep.
		var fromAbove []float64
		for l := top; l >= 0; l-- {
			dh := dhNext[l]
			if fromAbove != nil {
				for j := range dh {
					dh[j] += fromAbove[j]
				}
			}
			dx, dhPrev, dcPrev := m.layers[l].backstep(&caches[l][t], dh, dcNext[l])
			dhNext[l] = dhPrev
			dcNext[l] = dcPrev
			fromAbove = dx
		}
	}
}

func (m *LSTM) applyAdam() {
	m.adamStep++
	for _, layer := range m.layers {
		layer.wx.adam(m.cfg.LearningRate, m.adamStep)
		layer.wh.adam(m.cfg.LearningRate, m.adamStep)
		layer.b.adam(m.cfg.LearningRate, m.adamStep)
	}
	m.outW.adam(m.cfg.LearningRate, m.adamStep)
	m.outB.adam(m.cfg.LearningRate, m.adamStep)
}

// lstmLayer is one recurrent layer. Gate pre-activations are stored as a
// single 4H block in i, f, g, o order.
type lstmLayer struct {
	inSize int
	hidden int
	wx     *mat // 4H x in
	wh     *mat // 4H x H
	b      *mat // 4H x 1
}

func newLSTMLayer(inSize, hidden int, rng *rand.Rand) *lstmLayer {
	return &lstmLayer{
		inSize: inSize,
		hidden: hidden,
		wx:     newMat(4*hidden, inSize, rng, initScale(inSize)),
		wh:     newMat(4*hidden, hidden, rng, initScale(hidden)),
		b:      newMat(4*hidden, 1, nil, 0),
	}
}

// stepCache records the activations of one layer at one timestep.
type stepCache struct {
	x     []float64
	hPrev []float64
	cPrev []float64
	i     []float64
	f     []float64
	g     []float64
	o     []float64
	c     []float64
	h     []float64
}

func (l *lstmLayer) step(x, hPrev, cPrev []float64, cache *stepCache) (h, c []float64) {
	H := l.hidden
	pre := make([]float64, 4*H)
	for r := 0; r < 4*H; r++ {
		sum := l.b.w[r]
		row := l.wx.w[r*l.inSize:]
		for j := 0; j < l.inSize; j++ {
			sum += row[j] * x[j]
		}
		hrow := l.wh.w[r*H:]
		for j := 0; j < H; j++ {
			sum += hrow[j] * hPrev[j]
		}
		pre[r] = sum
	}

	i := make([]float64, H)
	f := make([]float64, H)
	g := make([]float64, H)
	o := make([]float64, H)
	c = make([]float64, H)
	h = make([]float64, H)
	for j := 0; j < H; j++ {
		i[j] = sigmoid(pre[j])
		f[j] = sigmoid(pre[H+j])
		g[j] = math.Tanh(pre[2*H+j])
		o[j] = sigmoid(pre[3*H+j])
		c[j] = f[j]*cPrev[j] + i[j]*g[j]
		h[j] = o[j] * math.Tanh(c[j])
	}

	if cache != nil {
		xCopy := make([]float64, len(x))
		copy(xCopy, x)
		*cache = stepCache{x: xCopy, hPrev: hPrev, cPrev: cPrev, i: i, f: f, g: g, o: o, c: c, h: h}
	}
	return h, c
}

// backstep backpropagates one timestep given the hidden and cell gradients
// flowing in from the future, returning the gradients for the layer input
// and the previous step's states.
func (l *lstmLayer) backstep(cache *stepCache, dh, dcIn []float64) (dx, dhPrev, dcPrev []float64) {
	H := l.hidden
	dpre := make([]float64, 4*H)
	dcPrev = make([]float64, H)

	for j := 0; j < H; j++ {
		tc := math.Tanh(cache.c[j])
		do := dh[j] * tc
		dc := dh[j]*cache.o[j]*(1-tc*tc) + dcIn[j]

		di := dc * cache.g[j]
		df := dc * cache.cPrev[j]
		dg := dc * cache.i[j]
		dcPrev[j] = dc * cache.f[j]

		dpre[j] = di * cache.i[j] * (1 - cache.i[j])
		dpre[H+j] = df * cache.f[j] * (1 - cache.f[j])
		dpre[2*H+j] = dg * (1 - cache.g[j]*cache.g[j])
		dpre[3*H+j] = do * cache.o[j] * (1 - cache.o[j])
	}

	dx = make([]float64, l.inSize)
	dhPrev = make([]float64, H)
	for r := 0; r < 4*H; r++ {
		d := dpre[r]
		if d == 0 {
			continue
		}
		l.b.g[r] += d
		xrow := r * l.inSize
		for j := 0; j < l.inSize; j++ {
			l.wx.g[xrow+j] += d * cache.x[j]
			dx[j] += l.wx.w[xrow+j] * d
		}
		hrow := r * H
		for j := 0; j < H; j++ {
			l.wh.g[hrow+j] += d * cache.hPrev[j]
			dhPrev[j] += l.wh.w[hrow+j] * d
		}
	}
	return dx, dhPrev, dcPrev
}

// mat is a dense matrix in row-major flat storage with accumulated
// gradients and Adam moment estimates.
type mat struct {
	rows, cols int
	w          []float64
	g          []float64
	m          []float64
	v          []float64
}

// newMat allocates a matrix. With a nil rng or zero scale the weights start
// at zero, which is what biases want.
func newMat(rows, cols int, rng *rand.Rand, scale float64) *mat {
	n := rows * cols
	mt := &mat{
		rows: rows,
		cols: cols,
		w:    make([]float64, n),
		g:    make([]float64, n),
		m:    make([]float64, n),
		v:    make([]float64, n),
	}
	if rng != nil && scale > 0 {
		for i := range mt.w {
			mt.w[i] = (rng.Float64()*2 - 1) * scale
		}
	}
	return mt
}

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// adam applies one Adam update from the accumulated gradients and clears
// them.
func (mt *mat) adam(lr float64, step int) {
	c1 := 1 - math.Pow(adamBeta1, float64(step))
	c2 := 1 - math.Pow(adamBeta2, float64(step))
	for i, g := range mt.g {
		if g == 0 && mt.m[i] == 0 && mt.v[i] == 0 {
			continue
		}
		mt.m[i] = adamBeta1*mt.m[i] + (1-adamBeta1)*g
		mt.v[i] = adamBeta2*mt.v[i] + (1-adamBeta2)*g*g
		mHat := mt.m[i] / c1
		vHat := mt.v[i] / c2
		mt.w[i] -= lr * mHat / (math.Sqrt(vHat) + adamEpsilon)
		mt.g[i] = 0
	}
}

func initScale(fanIn int) float64 {
	return 1 / math.Sqrt(float64(fanIn))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
