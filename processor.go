package alfa

import (
	"context"
	"encoding/base64"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

const (
	tagStoreEncrypt = "store.encrypt"
	tagLoadDecrypt  = "load.decrypt"
	tagSendMask     = "send.mask"
	tagSendRedact   = "send.redact"
)

func init() {
	sentinel.Tag(tagStoreEncrypt)
	sentinel.Tag(tagLoadDecrypt)
	sentinel.Tag(tagSendMask)
	sentinel.Tag(tagSendRedact)
}

// Processor marshals tagged records across three boundaries:
// Store encrypts then marshals, Load unmarshals then decrypts, and Send
// masks and redacts then marshals.
//
// Processors are safe for concurrent use. SetEncryptor and SetMasker may be
// called at any time, for example to rotate keys.
type Processor[T Cloner[T]] struct {
	codec Codec

	mu         sync.RWMutex
	encryptors map[EncryptAlgo]Encryptor
	maskers    map[MaskType]Masker

	validateOnce sync.Once
	validateErr  error

	plans *fieldPlans
}

// fieldPlans holds the tagged fields of one type, per boundary.
type fieldPlans struct {
	typeName string
	encrypt  []fieldPlan
	decrypt  []fieldPlan
	mask     []fieldPlan
	redact   []fieldPlan
}

// fieldPlan describes how to transform a single string or []byte field.
type fieldPlan struct {
	index   []int
	name    string
	tagVal  string
	isBytes bool
}

var planCache sync.Map // reflect.Type -> *fieldPlans

// NewProcessor creates a Processor for T. Encryptors must be registered
// with SetEncryptor before Store or Load touch encrypted fields.
func NewProcessor[T Cloner[T]](codec Codec) (*Processor[T], error) {
	plans, err := plansFor[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec:      codec,
		encryptors: make(map[EncryptAlgo]Encryptor),
		maskers:    builtinMaskers(),
		plans:      plans,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName)
	return p, nil
}

// SetEncryptor registers an encryptor for the given algorithm.
func (p *Processor[T]) SetEncryptor(algo EncryptAlgo, enc Encryptor) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.encryptors[algo] = enc
	return p
}

// SetMasker registers a masker for the given type.
func (p *Processor[T]) SetMasker(mt MaskType, m Masker) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maskers[mt] = m
	return p
}

// Validate checks that every tagged field has a registered capability.
// It also runs on the first Store, Load or Send.
func (p *Processor[T]) Validate() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		p.validateErr = p.validateCapabilities()
	})
	return p.validateErr
}

func plansFor[T any]() (*fieldPlans, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := planCache.Load(typ); ok {
		return cached.(*fieldPlans), nil
	}
	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}
	actual, _ := planCache.LoadOrStore(typ, plans)
	return actual.(*fieldPlans), nil
}

// buildFieldPlans scans the struct tags of T. Only top-level string and
// []byte fields take part.
func buildFieldPlans[T any]() (*fieldPlans, error) {
	spec := sentinel.Scan[T]()
	plans := &fieldPlans{typeName: spec.TypeName}

	for _, field := range spec.Fields {
		kind := field.ReflectType.Kind()
		isBytes := kind == reflect.Slice && field.ReflectType.Elem().Kind() == reflect.Uint8
		if kind != reflect.String && !isBytes {
			continue
		}
		base := fieldPlan{index: field.Index, name: field.Name, isBytes: isBytes}

		if val, ok := field.Tags[tagStoreEncrypt]; ok {
			if !IsValidEncryptAlgo(EncryptAlgo(val)) {
				return nil, fmt.Errorf("%w: encryption algorithm %q for field %s", ErrInvalidTag, val, field.Name)
			}
			plan := base
			plan.tagVal = val
			plans.encrypt = append(plans.encrypt, plan)
		}
		if val, ok := field.Tags[tagLoadDecrypt]; ok {
			if !IsValidEncryptAlgo(EncryptAlgo(val)) {
				return nil, fmt.Errorf("%w: encryption algorithm %q for field %s", ErrInvalidTag, val, field.Name)
			}
			plan := base
			plan.tagVal = val
			plans.decrypt = append(plans.decrypt, plan)
		}
		if val, ok := field.Tags[tagSendMask]; ok {
			if !IsValidMaskType(MaskType(val)) {
				return nil, fmt.Errorf("%w: mask type %q for field %s", ErrInvalidTag, val, field.Name)
			}
			plan := base
			plan.tagVal = val
			plans.mask = append(plans.mask, plan)
		}
		if val, ok := field.Tags[tagSendRedact]; ok {
			plan := base
			plan.tagVal = val
			plans.redact = append(plans.redact, plan)
		}
	}
	return plans, nil
}

func (p *Processor[T]) validateCapabilities() error {
	for _, plan := range p.plans.encrypt {
		if _, ok := p.encryptors[EncryptAlgo(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingEncryptor, plan.tagVal, plan.name)
		}
	}
	for _, plan := range p.plans.decrypt {
		if _, ok := p.encryptors[EncryptAlgo(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingEncryptor, plan.tagVal, plan.name)
		}
	}
	for _, plan := range p.plans.mask {
		if _, ok := p.maskers[MaskType(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingMasker, plan.tagVal, plan.name)
		}
	}
	return nil
}

// Store encrypts tagged fields of a copy of obj and marshals it.
func (p *Processor[T]) Store(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	var retData []byte
	defer func() {
		emitRecordStored(ctx, p.codec.ContentType(), p.plans.typeName,
			len(retData), time.Since(start), len(p.plans.encrypt), retErr)
	}()

	if obj == nil {
		retErr = newCodecError(ErrMarshal, fmt.Errorf("nil %s", p.plans.typeName))
		return nil, retErr
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	err := p.applyEncrypt(&clone)
	p.mu.RUnlock()
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = p.marshal(&clone)
	return retData, retErr
}

// Load unmarshals data and decrypts tagged fields.
func (p *Processor[T]) Load(ctx context.Context, data []byte) (*T, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	defer func() {
		emitRecordLoaded(ctx, p.codec.ContentType(), p.plans.typeName,
			len(data), time.Since(start), len(p.plans.decrypt), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.applyDecrypt(&obj); err != nil {
		retErr = err
		return nil, retErr
	}
	return &obj, nil
}

// Send masks and redacts tagged fields of a copy of obj and marshals it.
func (p *Processor[T]) Send(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	var retData []byte
	defer func() {
		emitRecordSent(ctx, p.codec.ContentType(), p.plans.typeName,
			len(retData), time.Since(start), len(p.plans.mask), retErr)
	}()

	if obj == nil {
		retErr = newCodecError(ErrMarshal, fmt.Errorf("nil %s", p.plans.typeName))
		return nil, retErr
	}

	clone := (*obj).Clone()
	rv := reflect.ValueOf(&clone).Elem()

	p.mu.RLock()
	for _, plan := range p.plans.mask {
		masker := p.maskers[MaskType(plan.tagVal)]
		setPlanValue(rv, plan, []byte(masker.Mask(string(planValue(rv, plan)))))
	}
	p.mu.RUnlock()

	for _, plan := range p.plans.redact {
		setPlanValue(rv, plan, []byte(plan.tagVal))
	}

	retData, retErr = p.marshal(&clone)
	return retData, retErr
}

func (p *Processor[T]) marshal(obj *T) ([]byte, error) {
	data, err := p.codec.Marshal(obj)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// applyEncrypt encrypts tagged fields. Strings hold base64 ciphertext.
func (p *Processor[T]) applyEncrypt(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()
	for _, plan := range p.plans.encrypt {
		enc := p.encryptors[EncryptAlgo(plan.tagVal)]
		plaintext := planValue(rv, plan)
		if len(plaintext) == 0 {
			continue
		}
		ciphertext, err := enc.Encrypt(plaintext)
		if err != nil {
			return newTransformError(ErrEncrypt, "encrypt", plan.name, err)
		}
		if plan.isBytes {
			setPlanValue(rv, plan, ciphertext)
		} else {
			setPlanValue(rv, plan, []byte(base64.StdEncoding.EncodeToString(ciphertext)))
		}
	}
	return nil
}

func (p *Processor[T]) applyDecrypt(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()
	for _, plan := range p.plans.decrypt {
		enc := p.encryptors[EncryptAlgo(plan.tagVal)]
		ciphertext := planValue(rv, plan)
		if len(ciphertext) == 0 {
			continue
		}
		if !plan.isBytes {
			decoded, err := base64.StdEncoding.DecodeString(string(ciphertext))
			if err != nil {
				return newTransformError(ErrDecrypt, "decrypt", plan.name, err)
			}
			ciphertext = decoded
		}
		plaintext, err := enc.Decrypt(ciphertext)
		if err != nil {
			return newTransformError(ErrDecrypt, "decrypt", plan.name, err)
		}
		setPlanValue(rv, plan, plaintext)
	}
	return nil
}

func planValue(rv reflect.Value, plan fieldPlan) []byte {
	field := rv.FieldByIndex(plan.index)
	if plan.isBytes {
		return field.Bytes()
	}
	return []byte(field.String())
}

func setPlanValue(rv reflect.Value, plan fieldPlan, value []byte) {
	field := rv.FieldByIndex(plan.index)
	if !field.CanSet() {
		return
	}
	if plan.isBytes {
		field.SetBytes(value)
	} else {
		field.SetString(string(value))
	}
}
