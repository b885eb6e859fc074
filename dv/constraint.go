package dv

import (
	"context"
	"strings"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/options"
	"github.com/teranos/semval/dv/parser"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

const uniquenessEntry = "PVUC"

// Validator checks one declared constraint of a value's property.
type Validator interface {
	Name() string
	ClearErrors()
	// Check records errors for v; an undeclared constraint is a no-op.
	Check(ctx context.Context, v Value)
	Errors() msg.List
}

// Pipeline runs the constraint validators in a fixed order: uniqueness,
// allowed pattern, allowed values. The first validator that reports errors
// ends the run.
type Pipeline struct {
	env *Env
}

// NewPipeline returns the pipeline for env.
func NewPipeline(env *Env) *Pipeline {
	return &Pipeline{env: env}
}

// Validators returns a fresh set of validators in pipeline order.
func (p *Pipeline) Validators() []Validator {
	return []Validator{
		&uniquenessValidator{env: p.env},
		&patternValidator{env: p.env},
		&allowsListValidator{env: p.env},
	}
}

// Check validates v, appending the errors of the first failing validator
// to v. Values without a property or item are skipped.
func (p *Pipeline) Check(ctx context.Context, v Value) {
	if v.Property() == nil || v.Item() == nil {
		return
	}
	log := logger.FromContext(ctx, p.env.Logger)
	for _, val := range p.Validators() {
		val.ClearErrors()
		val.Check(ctx, v)
		errs := val.Errors()
		if len(errs) == 0 {
			continue
		}
		log.Debugw("constraint failed",
			logger.FieldValidator, val.Name(),
			logger.FieldProperty, v.Property().Key,
			logger.FieldErrorCode, errs.Codes())
		for _, e := range errs {
			v.AddError(e)
		}
		return
	}
}

// Invalidate drops the cached constraint results that depend on entity.
func (p *Pipeline) Invalidate(ctx context.Context, entity item.EntityRef) (int, error) {
	n, err := cache.Purge(ctx, p.env.Cache, EntityCacheKey(entity))
	if err != nil {
		return n, errors.Wrapf(err, "invalidate %s", entity.Title())
	}
	logger.FromContext(ctx, p.env.Logger).Debugw("invalidated constraint cache",
		logger.FieldSubject, entity.Title(),
		logger.FieldCount, n)
	return n, nil
}

// EntityCacheKey is the container hash holding the links of entity.
func EntityCacheKey(entity item.EntityRef) string {
	return cache.EntityKey(entity.Root().Hash())
}

type validatorErrors struct {
	errs msg.List
}

func (e *validatorErrors) ClearErrors() { e.errs = nil }

func (e *validatorErrors) Errors() msg.List { return e.errs }

func (e *validatorErrors) internal(ctx context.Context, env *Env, name string, err error) {
	logger.FromContext(ctx, env.Logger).Warnw("constraint check failed",
		logger.FieldValidator, name,
		logger.FieldError, err)
	e.errs = append(e.errs, msg.New(msg.InternalError, err.Error()))
}

// uniquenessValidator allows a property value on at most one entity. The
// first entity found carrying it is authoritative and is cached until
// either entity is invalidated.
type uniquenessValidator struct {
	validatorErrors
	env *Env
}

func (*uniquenessValidator) Name() string { return "uniqueness" }

func (u *uniquenessValidator) Check(ctx context.Context, v Value) {
	p, it, subject := v.Property(), v.Item(), v.Subject()
	if subject.IsZero() {
		return
	}
	on, err := property.Flag(ctx, u.env.Store, p, property.UniquenessMeta)
	if err != nil {
		u.internal(ctx, u.env, u.Name(), err)
		return
	}
	if !on {
		return
	}

	auth, err := u.authoritative(ctx, p, it, subject.Root())
	if err != nil {
		u.internal(ctx, u.env, u.Name(), err)
		return
	}
	if auth != subject.Root() {
		u.errs = append(u.errs, msg.New(msg.UniquenessViolation, v.String(), auth.Title()))
	}
}

func (u *uniquenessValidator) authoritative(ctx context.Context, p *property.Property, it item.Item, subject item.EntityRef) (item.EntityRef, error) {
	log := logger.FromContext(ctx, u.env.Logger)
	hash := cache.Key("pvuc", p.Key+":"+it.Hash())

	c, err := u.env.Cache.Read(ctx, hash)
	if err != nil {
		return item.EntityRef{}, errors.Wrap(err, "read uniqueness cache")
	}
	var cached string
	ok, err := c.Get(uniquenessEntry, &cached)
	if err != nil {
		log.Warnw("discarding unreadable uniqueness entry", logger.FieldHash, hash, logger.FieldError, err)
	}
	if ok && err == nil {
		if parsed, err := item.Deserialize(item.KindEntity, cached); err == nil {
			log.Debugw("uniqueness", logger.FieldHash, hash, logger.FieldCacheHit, true)
			return parsed.(item.EntityRef), nil
		}
	}

	found, err := u.env.Store.QueryValues(ctx, p, property.Condition{Value: it, ExcludeSubject: subject}, 1)
	if err != nil {
		return item.EntityRef{}, errors.Wrapf(err, "query holders of %s", p.Key)
	}
	auth := subject
	if len(found) > 0 {
		auth = found[0].Root()
	}
	log.Debugw("uniqueness", logger.FieldHash, hash, logger.FieldCacheHit, false, logger.FieldSubject, auth.Title())

	if err := c.Set(uniquenessEntry, auth.Serialize()); err != nil {
		return item.EntityRef{}, err
	}
	if err := u.env.Cache.Save(ctx, c); err != nil {
		return item.EntityRef{}, errors.Wrap(err, "save uniqueness cache")
	}
	roots := []item.EntityRef{subject}
	if auth != subject {
		roots = append(roots, auth)
	}
	for _, root := range roots {
		if err := u.link(ctx, root, hash); err != nil {
			return item.EntityRef{}, err
		}
	}
	return auth, nil
}

// link records hash on the invalidation list of entity.
func (u *uniquenessValidator) link(ctx context.Context, entity item.EntityRef, hash string) error {
	key := EntityCacheKey(entity)
	c, err := u.env.Cache.Read(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "read links of %s", entity.Title())
	}
	c.Link(hash)
	if err := u.env.Cache.Save(ctx, c); err != nil {
		return errors.Wrapf(err, "save links of %s", entity.Title())
	}
	return nil
}

// patternValidator requires the value text to match one of the declared
// pattern references.
type patternValidator struct {
	validatorErrors
	env *Env
}

func (*patternValidator) Name() string { return "pattern" }

func (pv *patternValidator) Check(ctx context.Context, v Value) {
	refs, err := property.Texts(ctx, pv.env.Store, v.Property(), property.AllowsPatternMeta)
	if err != nil {
		pv.internal(ctx, pv.env, pv.Name(), err)
		return
	}
	if len(refs) == 0 {
		return
	}

	text := v.String()
	for _, ref := range refs {
		re, errs := parser.ResolvePattern(ref, pv.env.Patterns, pv.env.Config.AllowsPattern)
		if len(errs) > 0 {
			pv.errs = append(pv.errs, errs...)
			return
		}
		if re.MatchString(text) {
			return
		}
	}
	pv.errs = append(pv.errs, msg.New(msg.PatternMismatch, text, strings.Join(refs, ", ")))
}

// allowsListValidator restricts the value to the declared literals.
type allowsListValidator struct {
	validatorErrors
	env *Env
}

func (*allowsListValidator) Name() string { return "allows-list" }

func (a *allowsListValidator) Check(ctx context.Context, v Value) {
	p := v.Property()
	declared, err := a.env.Store.FetchSpecification(ctx, p.Entity(), property.AllowsValueMeta)
	if err != nil {
		a.internal(ctx, a.env, a.Name(), errors.Wrapf(err, "fetch allowed values of %s", p.Key))
		return
	}
	if len(declared) == 0 {
		return
	}

	literals := make([]string, 0, len(declared))
	for _, it := range declared {
		b, ok := it.(item.Blob)
		if !ok {
			a.errs = append(a.errs, msg.New(msg.AllowsListInvalid, p.String()))
			return
		}
		literals = append(literals, b.Text)
	}

	want := v.Item().Hash()
	skip := options.New(map[string]any{options.SkipConstraints: true})
	for _, lit := range literals {
		candidate := a.env.factory.newValue(v.TypeID(), p, v.Subject(), skip.Clone())
		candidate.Parse(ctx, lit)
		if candidate.IsValid() && candidate.Item().Hash() == want {
			return
		}
	}
	a.errs = append(a.errs, msg.New(msg.NotInAllowsList, v.String(), strings.Join(literals, ", ")))
}
