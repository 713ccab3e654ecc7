package synth

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/lti"
)

// lifted holds the stacked state-evolution matrices for a horizon of
// length N over an n-state, m-input plant:
//
//	x_stack = AN*x0 + AK*Khat + C*u_stack
//
// where x_stack = [x(1); ...; x(N)] and u_stack = [u(0); ...; u(N-1)].
// AN is N·n x n (stacked powers of A), AK is N·n x N·n (strictly
// lower-block-triangular powers of A, identity on the block diagonal) and
// C = AK * blockdiag(B, ..., B) is the input-to-state map.
type lifted struct {
	AN   *mat.Dense
	AK   *mat.Dense
	C    *mat.Dense
	Khat *mat.VecDense
}

func buildLifted(sys *lti.System, horizon int) *lifted {
	n := sys.StateDim()
	m := sys.InputDim()
	N := horizon

	an := mat.NewDense(N*n, n, nil)
	ak := mat.NewDense(N*n, N*n, nil)

	// aPow accumulates A^(i+1); aRow accumulates the i-th block row of AK.
	aPow := mat.NewDense(n, n, nil)
	aPow.Copy(sys.A)
	aRow := mat.NewDense(n, N*n, nil)

	eye := identity(n)
	tmp := mat.NewDense(n, N*n, nil)

	for i := 0; i < N; i++ {
		tmp.Mul(sys.A, aRow)
		aRow.Copy(tmp)
		aRow.Slice(0, n, i*n, (i+1)*n).(*mat.Dense).Copy(eye)

		an.Slice(i*n, (i+1)*n, 0, n).(*mat.Dense).Copy(aPow)
		ak.Slice(i*n, (i+1)*n, 0, N*n).(*mat.Dense).Copy(aRow)

		if i < N-1 {
			next := mat.NewDense(n, n, nil)
			next.Mul(sys.A, aPow)
			aPow.Copy(next)
		}
	}

	bDiag := mat.NewDense(N*n, N*m, nil)
	for i := 0; i < N; i++ {
		bDiag.Slice(i*n, (i+1)*n, i*m, (i+1)*m).(*mat.Dense).Copy(sys.B)
	}

	c := mat.NewDense(N*n, N*m, nil)
	c.Mul(ak, bDiag)

	k := sys.Offset()
	kHat := mat.NewVecDense(N*n, nil)
	for i := 0; i < N; i++ {
		for j := 0; j < n; j++ {
			kHat.SetVec(i*n+j, k.AtVec(j))
		}
	}

	return &lifted{AN: an, AK: ak, C: c, Khat: kHat}
}

// freeResponse returns AN*x0 + AK*Khat, the stacked state trajectory under
// zero input.
func (lf *lifted) freeResponse(x0 mat.Vector) *mat.VecDense {
	rows, _ := lf.AN.Dims()
	free := mat.NewVecDense(rows, nil)
	free.MulVec(lf.AN, x0)
	drift := mat.NewVecDense(rows, nil)
	drift.MulVec(lf.AK, lf.Khat)
	free.AddVec(free, drift)
	return free
}

func identity(n int) *mat.Dense {
	eye := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		eye.Set(i, i, 1)
	}
	return eye
}
