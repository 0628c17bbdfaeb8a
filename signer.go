package alfa

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"
)

// Signer produces a raw signature over the unsigned seal. Implementations
// may call out to an HSM or a remote service.
type Signer interface {
	Sign(ctx context.Context, data []byte) ([]byte, error)
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(ctx context.Context, data []byte) ([]byte, error)

// Sign calls f.
func (f SignerFunc) Sign(ctx context.Context, data []byte) ([]byte, error) {
	return f(ctx, data)
}

// RandomSigner returns n random bytes regardless of input. It fills the
// signature zone of demo seals and never verifies.
func RandomSigner(n int) Signer {
	return SignerFunc(func(ctx context.Context, _ []byte) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sig := make([]byte, n)
		if _, err := rand.Read(sig); err != nil {
			return nil, err
		}
		return sig, nil
	})
}

// Sign signs the unsigned seal with s and stores the result.
func (d *Document) Sign(ctx context.Context, s Signer) error {
	data, err := d.UnsignedSeal()
	if err != nil {
		return err
	}

	start := time.Now()
	sig, err := s.Sign(ctx, data)
	if err != nil {
		emitSealSigned(ctx, d.fields.AuthorityCode, 0, time.Since(start), err)
		return fmt.Errorf("sign: %w", err)
	}
	if err := d.SetSignature(sig); err != nil {
		emitSealSigned(ctx, d.fields.AuthorityCode, len(sig), time.Since(start), err)
		return err
	}
	emitSealSigned(ctx, d.fields.AuthorityCode, len(sig), time.Since(start), nil)
	return nil
}
