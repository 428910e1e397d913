package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petpalapp/petpal/internal/derive"
	"github.com/petpalapp/petpal/internal/errs"
	"github.com/petpalapp/petpal/internal/model"
	"github.com/petpalapp/petpal/internal/ports"
	"github.com/petpalapp/petpal/internal/storage"
)

// moodHistoryCap bounds the per-pet mood history to the most recent entries.
const moodHistoryCap = 10

var shortMonths = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// PetStore is the per-user partition of pets and their sub-records. It is
// bound to one user id at construction; a store opened without a user is
// inert: reads return empty collections and writes fail with ErrNoSession.
type PetStore struct {
	st    storage.Store
	log   *zap.Logger
	uid   string
	sched ports.NotificationScheduler

	mu          sync.Mutex
	pets        []model.Pet
	activePetID string
	events      map[string][]model.CalendarEvent
	mood        map[string]model.MoodSnapshot
	moodHist    map[string][]model.MoodHistoryEntry
	health      map[string][]model.HealthRecord
	photos      map[string][]model.GalleryPhoto
	albums      map[string][]model.Album
	lastID      int64

	persistFails atomic.Int64
	now          func() time.Time
}

// NewPetStore loads the user's partition and returns a ready store. Storage
// read failures degrade to empty collections with a warning. An empty userID
// yields an inert store.
func NewPetStore(ctx context.Context, st storage.Store, log *zap.Logger, userID string) (*PetStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ps := &PetStore{st: st, log: log, uid: userID, sched: ports.NoopScheduler{}, now: time.Now}
	ps.resetLocked()
	if userID == "" {
		return ps, nil
	}
	if err := ps.load(ctx); err != nil {
		return nil, err
	}
	return ps, nil
}

// resetLocked reinitializes all collections to empty. Callers hold ps.mu or
// own the store exclusively.
func (ps *PetStore) resetLocked() {
	ps.pets = nil
	ps.activePetID = ""
	ps.events = map[string][]model.CalendarEvent{}
	ps.mood = map[string]model.MoodSnapshot{}
	ps.moodHist = map[string][]model.MoodHistoryEntry{}
	ps.health = map[string][]model.HealthRecord{}
	ps.photos = map[string][]model.GalleryPhoto{}
	ps.albums = map[string][]model.Album{}
}

// load fetches all partition keys concurrently and applies them as a single
// transition, so no caller ever observes a partially-loaded partition.
func (ps *PetStore) load(ctx context.Context) error {
	var (
		pets     []model.Pet
		activeID string
		events   = map[string][]model.CalendarEvent{}
		mood     = map[string]model.MoodSnapshot{}
		moodHist = map[string][]model.MoodHistoryEntry{}
		health   = map[string][]model.HealthRecord{}
		photos   = map[string][]model.GalleryPhoto{}
		albums   = map[string][]model.Album{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { ps.loadKey(gctx, storage.KindPets, &pets); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindActivePetID, &activeID); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindCalendar, &events); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindMoodData, &mood); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindMoodHistory, &moodHist); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindHealthHistory, &health); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindGalleryPhotos, &photos); return nil })
	g.Go(func() error { ps.loadKey(gctx, storage.KindAlbums, &albums); return nil })
	if err := g.Wait(); err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.pets = pets
	ps.activePetID = activeID
	ps.events = events
	ps.mood = mood
	ps.moodHist = moodHist
	ps.health = health
	ps.photos = photos
	ps.albums = albums
	ps.normalizeActiveLocked()
	return nil
}

// loadKey reads one partition key into out, degrading to the zero value on
// any read or decode failure.
func (ps *PetStore) loadKey(ctx context.Context, kind string, out any) {
	key := storage.UserKey(ps.uid, kind)
	raw, ok, err := ps.st.Get(ctx, key)
	if err != nil {
		ps.warn(key, err)
		return
	}
	if !ok {
		return
	}
	if err := storage.DecodeJSON(raw, out); err != nil {
		ps.log.Warn("stored value unreadable, using defaults", zap.String("key", key), zap.Error(err))
	}
}

// normalizeActiveLocked repairs a missing or dangling active-pet pointer.
func (ps *PetStore) normalizeActiveLocked() {
	if len(ps.pets) == 0 {
		ps.activePetID = ""
		return
	}
	for _, p := range ps.pets {
		if p.ID == ps.activePetID {
			return
		}
	}
	ps.activePetID = ps.pets[0].ID
}

// UserID returns the id of the partition's owner, empty for an inert store.
func (ps *PetStore) UserID() string { return ps.uid }

// SetScheduler installs the host's reminder scheduler. The default discards
// every request.
func (ps *PetStore) SetScheduler(s ports.NotificationScheduler) {
	if s == nil {
		s = ports.NoopScheduler{}
	}
	ps.mu.Lock()
	ps.sched = s
	ps.mu.Unlock()
}

// PersistFailures reports how many best-effort writes have failed so far.
func (ps *PetStore) PersistFailures() int64 { return ps.persistFails.Load() }

// ---- pets ----

// AddPet appends a pet to the user's list. Nombre is the only required field;
// the photo always starts absent. The first pet becomes the active pet.
func (ps *PetStore) AddPet(ctx context.Context, p model.Pet) (string, error) {
	if ps.uid == "" {
		return "", errs.ErrNoSession
	}
	if strings.TrimSpace(p.Nombre) == "" {
		return "", fmt.Errorf("%w: pet name is required", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate pet id: %w", err)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	p.ID = id.String()
	p.Photo = nil
	ps.pets = append(ps.pets, p)
	if len(ps.pets) == 1 {
		ps.activePetID = p.ID
		ps.persist(ctx, storage.KindActivePetID, ps.activePetID)
	}
	ps.persist(ctx, storage.KindPets, ps.pets)
	return p.ID, nil
}

// DeletePet removes a pet and cascades away its sub-records. Deleting the
// only remaining pet is refused. Deleting the active pet re-selects the
// first remaining pet.
func (ps *PetStore) DeletePet(ctx context.Context, petID string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if len(ps.pets) <= 1 {
		return errs.ErrLastPet
	}
	idx := -1
	for i, p := range ps.pets {
		if p.ID == petID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errs.ErrNotFound
	}

	ps.pets = append(ps.pets[:idx], ps.pets[idx+1:]...)
	ps.persist(ctx, storage.KindPets, ps.pets)

	if ps.activePetID == petID {
		ps.activePetID = ps.pets[0].ID
		ps.persist(ctx, storage.KindActivePetID, ps.activePetID)
	}

	// Cascade: drop every sub-record keyed by the deleted pet.
	delete(ps.events, petID)
	delete(ps.mood, petID)
	delete(ps.moodHist, petID)
	delete(ps.health, petID)
	delete(ps.photos, petID)
	delete(ps.albums, petID)
	ps.persist(ctx, storage.KindCalendar, ps.events)
	ps.persist(ctx, storage.KindMoodData, ps.mood)
	ps.persist(ctx, storage.KindMoodHistory, ps.moodHist)
	ps.persist(ctx, storage.KindHealthHistory, ps.health)
	ps.persist(ctx, storage.KindGalleryPhotos, ps.photos)
	ps.persist(ctx, storage.KindAlbums, ps.albums)
	return nil
}

// SwitchActivePet points subsequent implicit operations at another pet.
// Unknown pet ids are rejected with ErrNotFound.
func (ps *PetStore) SwitchActivePet(ctx context.Context, petID string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, p := range ps.pets {
		if p.ID == petID {
			ps.activePetID = petID
			ps.persist(ctx, storage.KindActivePetID, ps.activePetID)
			return nil
		}
	}
	return errs.ErrNotFound
}

// UpdatePetInfo merges the given fields into the active pet.
func (ps *PetStore) UpdatePetInfo(ctx context.Context, upd model.PetUpdate) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p := ps.activeLocked()
	if p == nil {
		return errs.ErrNoActivePet
	}
	merge := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	merge(&p.Nombre, upd.Nombre)
	merge(&p.Especie, upd.Especie)
	merge(&p.Raza, upd.Raza)
	merge(&p.Edad, upd.Edad)
	merge(&p.FechaNacimiento, upd.FechaNacimiento)
	merge(&p.Peso, upd.Peso)
	merge(&p.Altura, upd.Altura)
	merge(&p.Veterinario, upd.Veterinario)
	merge(&p.Clinica, upd.Clinica)
	merge(&p.Telefono, upd.Telefono)
	merge(&p.Microchip, upd.Microchip)
	merge(&p.Placa, upd.Placa)
	merge(&p.Notas, upd.Notas)
	ps.persist(ctx, storage.KindPets, ps.pets)
	return nil
}

// UpdatePetPhoto replaces the active pet's photo URI.
func (ps *PetStore) UpdatePetPhoto(ctx context.Context, uri string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p := ps.activeLocked()
	if p == nil {
		return errs.ErrNoActivePet
	}
	p.Photo = &uri
	ps.persist(ctx, storage.KindPets, ps.pets)
	return nil
}

// Pets returns a copy of the user's pet list in creation order.
func (ps *PetStore) Pets() []model.Pet {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]model.Pet, len(ps.pets))
	copy(out, ps.pets)
	return out
}

// ActivePetID returns the current active-pet pointer, empty when the user
// has no pets.
func (ps *PetStore) ActivePetID() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.activePetID
}

// ActivePet returns a copy of the active pet.
func (ps *PetStore) ActivePet() (model.Pet, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p := ps.activeLocked(); p != nil {
		return *p, true
	}
	return model.Pet{}, false
}

// activeLocked resolves the active pet, falling back to the first pet.
func (ps *PetStore) activeLocked() *model.Pet {
	for i := range ps.pets {
		if ps.pets[i].ID == ps.activePetID {
			return &ps.pets[i]
		}
	}
	if len(ps.pets) > 0 {
		return &ps.pets[0]
	}
	return nil
}

// ---- calendar ----

// AddCalendarEvent appends an event to the active pet's calendar and assigns
// a creation-order id.
func (ps *PetStore) AddCalendarEvent(ctx context.Context, ev model.CalendarEvent) (int64, error) {
	if ps.uid == "" {
		return 0, errs.ErrNoSession
	}
	if strings.TrimSpace(ev.Title) == "" {
		return 0, fmt.Errorf("%w: event title is required", errs.ErrValidation)
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	if pid == "" {
		return 0, errs.ErrNoActivePet
	}
	ev.ID = ps.nextIDLocked()
	ps.events[pid] = append(ps.events[pid], ev)
	ps.persist(ctx, storage.KindCalendar, ps.events)
	ps.scheduleReminderLocked(ctx, ev)
	return ev.ID, nil
}

// scheduleReminderLocked asks the host to remind about the event on its day.
// Best effort: scheduling failures are warnings, the event itself is already
// stored.
func (ps *PetStore) scheduleReminderLocked(ctx context.Context, ev model.CalendarEvent) {
	at := time.Date(ev.Year, time.Month(ev.Month+1), ev.Date, 9, 0, 0, 0, time.Local)
	id := fmt.Sprintf("event-%d", ev.ID)
	if err := ps.sched.Schedule(ctx, id, at, ev.Title, "Recordatorio de cuidado"); err != nil {
		ps.log.Warn("reminder not scheduled", zap.String("id", id), zap.Error(err))
	}
}

// DeleteCalendarEvent removes one event from the active pet's calendar.
func (ps *PetStore) DeleteCalendarEvent(ctx context.Context, id int64) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	list := ps.events[pid]
	for i, e := range list {
		if e.ID == id {
			ps.events[pid] = append(list[:i], list[i+1:]...)
			ps.persist(ctx, storage.KindCalendar, ps.events)
			if err := ps.sched.Cancel(ctx, fmt.Sprintf("event-%d", id)); err != nil {
				ps.log.Warn("reminder not canceled", zap.Int64("event", id), zap.Error(err))
			}
			return nil
		}
	}
	return errs.ErrNotFound
}

// UpdateCalendarEvent merges fields into one event of the active pet.
func (ps *PetStore) UpdateCalendarEvent(ctx context.Context, id int64, upd model.EventUpdate) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	list := ps.events[ps.activePetID]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if upd.Title != nil {
			list[i].Title = *upd.Title
		}
		if upd.Time != nil {
			list[i].Time = *upd.Time
		}
		if upd.Category != nil {
			list[i].Category = *upd.Category
		}
		if upd.Date != nil {
			list[i].Date = *upd.Date
		}
		if upd.Month != nil {
			list[i].Month = *upd.Month
		}
		if upd.Year != nil {
			list[i].Year = *upd.Year
		}
		ps.persist(ctx, storage.KindCalendar, ps.events)
		return nil
	}
	return errs.ErrNotFound
}

// Events returns a copy of the active pet's calendar events.
func (ps *PetStore) Events() []model.CalendarEvent {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	src := ps.events[ps.activePetID]
	out := make([]model.CalendarEvent, len(src))
	copy(out, src)
	return out
}

// ---- mood ----

// Mood returns the active pet's current snapshot, or the default snapshot
// when none was ever recorded.
func (ps *PetStore) Mood() model.MoodSnapshot {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if m, ok := ps.mood[ps.activePetID]; ok {
		return m
	}
	return model.DefaultMood()
}

// MoodHistory returns a copy of the active pet's classified mood samples,
// newest first.
func (ps *PetStore) MoodHistory() []model.MoodHistoryEntry {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	src := ps.moodHist[ps.activePetID]
	out := make([]model.MoodHistoryEntry, len(src))
	copy(out, src)
	return out
}

// UpdateMood merges the given metrics into the active pet's snapshot,
// classifies the new average and prepends a history entry, evicting beyond
// the cap.
func (ps *PetStore) UpdateMood(ctx context.Context, upd model.MoodUpdate) (model.MoodHistoryEntry, error) {
	if ps.uid == "" {
		return model.MoodHistoryEntry{}, errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	if pid == "" {
		return model.MoodHistoryEntry{}, errs.ErrNoActivePet
	}

	m, ok := ps.mood[pid]
	if !ok {
		m = model.DefaultMood()
	}
	if upd.Happiness != nil {
		m.Happiness = *upd.Happiness
	}
	if upd.Energy != nil {
		m.Energy = *upd.Energy
	}
	if upd.Calmness != nil {
		m.Calmness = *upd.Calmness
	}
	if upd.Playfulness != nil {
		m.Playfulness = *upd.Playfulness
	}
	if upd.Appetite != nil {
		m.Appetite = *upd.Appetite
	}
	ps.mood[pid] = m

	band := derive.ClassifyMood(m.Average())
	now := ps.now()
	entry := model.MoodHistoryEntry{
		ID:        ps.nextIDLocked(),
		Date:      shortDate(now),
		Mood:      band.Label,
		Color:     band.Color,
		Timestamp: now.UnixMilli(),
	}
	hist := append([]model.MoodHistoryEntry{entry}, ps.moodHist[pid]...)
	if len(hist) > moodHistoryCap {
		hist = hist[:moodHistoryCap]
	}
	ps.moodHist[pid] = hist

	ps.persist(ctx, storage.KindMoodData, ps.mood)
	ps.persist(ctx, storage.KindMoodHistory, ps.moodHist)
	return entry, nil
}

// ---- health ----

// AddHealthRecord prepends a record to the active pet's medical history.
// Title and doctor are required; the date defaults to "now" unless a custom
// date is supplied.
func (ps *PetStore) AddHealthRecord(ctx context.Context, in model.HealthRecordInput) (model.HealthRecord, error) {
	if ps.uid == "" {
		return model.HealthRecord{}, errs.ErrNoSession
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Doctor) == "" {
		return model.HealthRecord{}, fmt.Errorf("%w: title and doctor are required", errs.ErrValidation)
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	if pid == "" {
		return model.HealthRecord{}, errs.ErrNoActivePet
	}

	at := ps.now()
	if in.CustomDate != nil {
		at = *in.CustomDate
	}
	rec := model.HealthRecord{
		ID:        ps.nextIDLocked(),
		Title:     in.Title,
		Category:  in.Category,
		Doctor:    in.Doctor,
		Notes:     in.Notes,
		Date:      recordDate(at),
		Timestamp: at.UnixMilli(),
	}
	ps.health[pid] = append([]model.HealthRecord{rec}, ps.health[pid]...)
	ps.persist(ctx, storage.KindHealthHistory, ps.health)
	return rec, nil
}

// DeleteHealthRecord removes one record from the active pet's history.
func (ps *PetStore) DeleteHealthRecord(ctx context.Context, id int64) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	list := ps.health[pid]
	for i, r := range list {
		if r.ID == id {
			ps.health[pid] = append(list[:i], list[i+1:]...)
			ps.persist(ctx, storage.KindHealthHistory, ps.health)
			return nil
		}
	}
	return errs.ErrNotFound
}

// HealthHistory returns a copy of the active pet's records, newest first.
func (ps *PetStore) HealthHistory() []model.HealthRecord {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	src := ps.health[ps.activePetID]
	out := make([]model.HealthRecord, len(src))
	copy(out, src)
	return out
}

// ---- gallery & albums ----

// AddGalleryPhoto prepends a photo to the active pet's gallery. New photos
// are not favorites and belong to the implicit "all" album.
func (ps *PetStore) AddGalleryPhoto(ctx context.Context, uri string, loc *model.GeoPoint) (model.GalleryPhoto, error) {
	if ps.uid == "" {
		return model.GalleryPhoto{}, errs.ErrNoSession
	}
	if strings.TrimSpace(uri) == "" {
		return model.GalleryPhoto{}, fmt.Errorf("%w: photo uri is required", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.GalleryPhoto{}, fmt.Errorf("generate photo id: %w", err)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	if pid == "" {
		return model.GalleryPhoto{}, errs.ErrNoActivePet
	}
	photo := model.GalleryPhoto{
		ID:         id.String(),
		URI:        uri,
		Date:       recordDate(ps.now()),
		Location:   loc,
		IsFavorite: false,
		Albums:     []string{model.AlbumAllID},
	}
	ps.photos[pid] = append([]model.GalleryPhoto{photo}, ps.photos[pid]...)
	ps.persist(ctx, storage.KindGalleryPhotos, ps.photos)
	return photo, nil
}

// ToggleFavorite flips one photo's favorite flag in place.
func (ps *PetStore) ToggleFavorite(ctx context.Context, photoID string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	list := ps.photos[ps.activePetID]
	for i := range list {
		if list[i].ID == photoID {
			list[i].IsFavorite = !list[i].IsFavorite
			ps.persist(ctx, storage.KindGalleryPhotos, ps.photos)
			return nil
		}
	}
	return errs.ErrNotFound
}

// CreateAlbum appends a user album, seeding the list with the implicit "all"
// entry the first time.
func (ps *PetStore) CreateAlbum(ctx context.Context, name string) (model.Album, error) {
	if ps.uid == "" {
		return model.Album{}, errs.ErrNoSession
	}
	if strings.TrimSpace(name) == "" {
		return model.Album{}, fmt.Errorf("%w: album name is required", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Album{}, fmt.Errorf("generate album id: %w", err)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	if pid == "" {
		return model.Album{}, errs.ErrNoActivePet
	}
	if len(ps.albums[pid]) == 0 {
		ps.albums[pid] = []model.Album{model.AllAlbum()}
	}
	album := model.Album{ID: id.String(), Name: name}
	ps.albums[pid] = append(ps.albums[pid], album)
	ps.persist(ctx, storage.KindAlbums, ps.albums)
	return album, nil
}

// AddPhotoToAlbum adds a photo to an album. Adding twice is a no-op.
func (ps *PetStore) AddPhotoToAlbum(ctx context.Context, photoID, albumID string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	list := ps.photos[ps.activePetID]
	for i := range list {
		if list[i].ID != photoID {
			continue
		}
		if list[i].InAlbum(albumID) {
			return nil
		}
		list[i].Albums = append(list[i].Albums, albumID)
		ps.persist(ctx, storage.KindGalleryPhotos, ps.photos)
		return nil
	}
	return errs.ErrNotFound
}

// DeletePhoto removes one photo from the active pet's gallery.
func (ps *PetStore) DeletePhoto(ctx context.Context, photoID string) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	pid := ps.activePetID
	list := ps.photos[pid]
	for i, p := range list {
		if p.ID == photoID {
			ps.photos[pid] = append(list[:i], list[i+1:]...)
			ps.persist(ctx, storage.KindGalleryPhotos, ps.photos)
			return nil
		}
	}
	return errs.ErrNotFound
}

// Photos returns a copy of the active pet's gallery, newest first.
func (ps *PetStore) Photos() []model.GalleryPhoto {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	src := ps.photos[ps.activePetID]
	out := make([]model.GalleryPhoto, len(src))
	copy(out, src)
	return out
}

// Albums returns the active pet's album list, always starting with the
// implicit "all" album.
func (ps *PetStore) Albums() []model.Album {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	src := ps.albums[ps.activePetID]
	if len(src) == 0 {
		return []model.Album{model.AllAlbum()}
	}
	out := make([]model.Album, len(src))
	copy(out, src)
	return out
}

// ---- helpers ----

// nextIDLocked returns a unique, creation-order-monotonic id. Millisecond
// timestamps collide within a burst, so ties advance by one.
func (ps *PetStore) nextIDLocked() int64 {
	id := ps.now().UnixMilli()
	if id <= ps.lastID {
		id = ps.lastID + 1
	}
	ps.lastID = id
	return id
}

// persist mirrors one partition key to storage, best-effort.
func (ps *PetStore) persist(ctx context.Context, kind string, v any) {
	key := storage.UserKey(ps.uid, kind)
	s, err := storage.EncodeJSON(v)
	if err == nil {
		err = ps.st.Set(ctx, key, s)
	}
	if err != nil {
		ps.warn(key, err)
	}
}

func (ps *PetStore) warn(key string, err error) {
	ps.persistFails.Add(1)
	ps.log.Warn("storage operation failed", zap.String("key", key), zap.Error(err))
}

// shortDate renders "2 Ene".
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[int(t.Month())-1])
}

// recordDate renders "2 Ene 2025".
func recordDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[int(t.Month())-1], t.Year())
}
