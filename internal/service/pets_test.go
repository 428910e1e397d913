package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/petpalapp/petpal/internal/errs"
	"github.com/petpalapp/petpal/internal/model"
	"github.com/petpalapp/petpal/internal/storage"
)

func newPetStore(t *testing.T, st storage.Store, uid string) *PetStore {
	t.Helper()
	ps, err := NewPetStore(context.Background(), st, zap.NewNop(), uid)
	if err != nil {
		t.Fatalf("NewPetStore: %v", err)
	}
	return ps
}

// tick replaces the store clock with a deterministic advancing one.
func tick(ps *PetStore, start time.Time) {
	now := start
	ps.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func addPet(t *testing.T, ps *PetStore, nombre string) string {
	t.Helper()
	id, err := ps.AddPet(context.Background(), model.Pet{Nombre: nombre})
	if err != nil {
		t.Fatalf("AddPet(%s): %v", nombre, err)
	}
	return id
}

func intp(v int) *int { return &v }

func TestScenarioA_FirstPetAndLastPetInvariant(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()

	d := newDirectory(t, st)
	u, err := d.Register(ctx, "ana", "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := d.CurrentUser(); !ok {
		t.Fatalf("expected auto-login after register")
	}

	ps := newPetStore(t, st, u.ID)
	lunaID := addPet(t, ps, "Luna")

	if got := len(ps.Pets()); got != 1 {
		t.Fatalf("pet count = %d, want 1", got)
	}
	if ps.ActivePetID() != lunaID {
		t.Fatalf("active pet = %q, want Luna", ps.ActivePetID())
	}

	if err := ps.DeletePet(ctx, lunaID); !errors.Is(err, errs.ErrLastPet) {
		t.Fatalf("deleting the only pet: err = %v, want ErrLastPet", err)
	}
	if got := len(ps.Pets()); got != 1 {
		t.Fatalf("pet count after refused delete = %d, want 1", got)
	}
}

func TestAddPet_Validation(t *testing.T) {
	ps := newPetStore(t, storage.NewMemory(), "u1")
	if _, err := ps.AddPet(context.Background(), model.Pet{Nombre: "  "}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeletePet_ReassignsActiveToFirstRemaining(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	first := addPet(t, ps, "Luna")
	second := addPet(t, ps, "Rex")
	third := addPet(t, ps, "Michi")

	// Delete the active pet (the first one): next active is a new first in list order.
	if ps.ActivePetID() != first {
		t.Fatalf("active = %q, want first pet", ps.ActivePetID())
	}
	if err := ps.DeletePet(ctx, first); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}
	if ps.ActivePetID() != second {
		t.Fatalf("active = %q, want %q (first remaining)", ps.ActivePetID(), second)
	}

	// Deleting a non-active pet leaves the pointer alone.
	if err := ps.DeletePet(ctx, third); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}
	if ps.ActivePetID() != second {
		t.Fatalf("active changed to %q after deleting a non-active pet", ps.ActivePetID())
	}

	if err := ps.DeletePet(ctx, "no-such-pet"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown pet: err = %v", err)
	}
}

func TestDeletePet_CascadesSubRecords(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	ps := newPetStore(t, st, "u1")
	keep := addPet(t, ps, "Luna")
	doomed := addPet(t, ps, "Rex")

	if err := ps.SwitchActivePet(ctx, doomed); err != nil {
		t.Fatalf("SwitchActivePet: %v", err)
	}
	if _, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: "Vacuna", Date: 1, Month: 0, Year: 2026}); err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	if _, err := ps.UpdateMood(ctx, model.MoodUpdate{Happiness: intp(10)}); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}
	if _, err := ps.AddGalleryPhoto(ctx, "file:///rex.jpg", nil); err != nil {
		t.Fatalf("AddGalleryPhoto: %v", err)
	}

	if err := ps.DeletePet(ctx, doomed); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}
	if ps.ActivePetID() != keep {
		t.Fatalf("active = %q, want %q", ps.ActivePetID(), keep)
	}

	// Reload from storage: no orphaned sub-records survive.
	ps2 := newPetStore(t, st, "u1")
	if _, ok := ps2.events[doomed]; ok {
		t.Errorf("orphaned calendar events for deleted pet")
	}
	if _, ok := ps2.mood[doomed]; ok {
		t.Errorf("orphaned mood snapshot for deleted pet")
	}
	if _, ok := ps2.moodHist[doomed]; ok {
		t.Errorf("orphaned mood history for deleted pet")
	}
	if _, ok := ps2.photos[doomed]; ok {
		t.Errorf("orphaned gallery for deleted pet")
	}
}

func TestSwitchActivePet(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	ps := newPetStore(t, st, "u1")
	addPet(t, ps, "Luna")
	rex := addPet(t, ps, "Rex")

	if err := ps.SwitchActivePet(ctx, "bogus"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown id: err = %v", err)
	}
	if err := ps.SwitchActivePet(ctx, rex); err != nil {
		t.Fatalf("SwitchActivePet: %v", err)
	}

	// Pointer survives a reload.
	ps2 := newPetStore(t, st, "u1")
	if ps2.ActivePetID() != rex {
		t.Fatalf("active after reload = %q, want %q", ps2.ActivePetID(), rex)
	}
}

func TestUpdatePetInfo_PartialMerge(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	if _, err := ps.AddPet(ctx, model.Pet{Nombre: "Rex", Especie: "Perro", Raza: "Labrador"}); err != nil {
		t.Fatalf("AddPet: %v", err)
	}

	peso := "28"
	if err := ps.UpdatePetInfo(ctx, model.PetUpdate{Peso: &peso}); err != nil {
		t.Fatalf("UpdatePetInfo: %v", err)
	}

	p, ok := ps.ActivePet()
	if !ok {
		t.Fatalf("no active pet")
	}
	if p.Peso != "28" || p.Nombre != "Rex" || p.Raza != "Labrador" {
		t.Fatalf("merge clobbered siblings: %+v", p)
	}

	if err := ps.UpdatePetPhoto(ctx, "file:///rex.jpg"); err != nil {
		t.Fatalf("UpdatePetPhoto: %v", err)
	}
	p, _ = ps.ActivePet()
	if p.Photo == nil || *p.Photo != "file:///rex.jpg" {
		t.Fatalf("photo = %v", p.Photo)
	}
}

func TestCalendarEvents(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	tick(ps, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	addPet(t, ps, "Luna")

	id1, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: "Vacuna", Category: model.CategoryVaccine, Date: 15, Month: 5, Year: 2025})
	if err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	id2, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: "Baño", Category: model.CategoryBath, Date: 20, Month: 5, Year: 2025})
	if err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not monotonic: %d then %d", id1, id2)
	}

	if _, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: ""}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty title: err = %v", err)
	}

	newTitle := "Vacuna anual"
	if err := ps.UpdateCalendarEvent(ctx, id1, model.EventUpdate{Title: &newTitle}); err != nil {
		t.Fatalf("UpdateCalendarEvent: %v", err)
	}
	evs := ps.Events()
	if len(evs) != 2 || evs[0].Title != "Vacuna anual" || evs[0].Date != 15 {
		t.Fatalf("events = %+v", evs)
	}

	if err := ps.DeleteCalendarEvent(ctx, id2); err != nil {
		t.Fatalf("DeleteCalendarEvent: %v", err)
	}
	if err := ps.DeleteCalendarEvent(ctx, id2); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("double delete: err = %v", err)
	}
	if got := len(ps.Events()); got != 1 {
		t.Fatalf("event count = %d", got)
	}
}

func TestMood_DefaultsAndMerge(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	addPet(t, ps, "Luna")

	if got := ps.Mood(); got != model.DefaultMood() {
		t.Fatalf("mood before any update = %+v", got)
	}

	// Only provided metrics change; the rest keep their defaults.
	if _, err := ps.UpdateMood(ctx, model.MoodUpdate{Happiness: intp(30)}); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}
	got := ps.Mood()
	want := model.DefaultMood()
	want.Happiness = 30
	if got != want {
		t.Fatalf("mood = %+v, want %+v", got, want)
	}
}

func TestScenarioB_AllNinetyIsMuyFeliz(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	tick(ps, time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC))
	addPet(t, ps, "Luna")

	entry, err := ps.UpdateMood(ctx, model.MoodUpdate{
		Happiness: intp(90), Energy: intp(90), Calmness: intp(90), Playfulness: intp(90), Appetite: intp(90),
	})
	if err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}
	if entry.Mood != "Muy Feliz" || entry.Color != "#FFD700" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Date != "2 Ene" {
		t.Fatalf("short date = %q, want 2 Ene", entry.Date)
	}

	hist := ps.MoodHistory()
	if len(hist) != 1 || hist[0].Mood != "Muy Feliz" {
		t.Fatalf("history = %+v", hist)
	}
}

func TestMoodHistory_CapAndOrder(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	tick(ps, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	addPet(t, ps, "Luna")

	for i := 0; i < 14; i++ {
		if _, err := ps.UpdateMood(ctx, model.MoodUpdate{Happiness: intp(i * 7 % 100)}); err != nil {
			t.Fatalf("UpdateMood #%d: %v", i, err)
		}
	}

	hist := ps.MoodHistory()
	if len(hist) != moodHistoryCap {
		t.Fatalf("history len = %d, want %d", len(hist), moodHistoryCap)
	}
	for i := 1; i < len(hist); i++ {
		if hist[i-1].Timestamp <= hist[i].Timestamp {
			t.Fatalf("history not newest-first at %d: %d then %d", i, hist[i-1].Timestamp, hist[i].Timestamp)
		}
	}
}

func TestHealthRecords(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	tick(ps, time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC))
	addPet(t, ps, "Luna")

	if _, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{Title: "Vacuna", Doctor: ""}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing doctor: err = %v", err)
	}
	if _, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{Title: "", Doctor: "Dr. Méndez"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing title: err = %v", err)
	}

	first, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{Title: "Vacuna rabia", Doctor: "Dr. Méndez", Category: model.HealthVaccine})
	if err != nil {
		t.Fatalf("AddHealthRecord: %v", err)
	}
	if first.Date != "10 Abr 2025" {
		t.Fatalf("record date = %q", first.Date)
	}

	custom := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
	second, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{Title: "Control", Doctor: "Dra. Ruiz", CustomDate: &custom})
	if err != nil {
		t.Fatalf("AddHealthRecord: %v", err)
	}
	if second.Date != "24 Dic 2024" || second.Timestamp != custom.UnixMilli() {
		t.Fatalf("custom-dated record = %+v", second)
	}

	// Newest-added first, regardless of the custom date.
	hist := ps.HealthHistory()
	if len(hist) != 2 || hist[0].ID != second.ID {
		t.Fatalf("history = %+v", hist)
	}

	if err := ps.DeleteHealthRecord(ctx, first.ID); err != nil {
		t.Fatalf("DeleteHealthRecord: %v", err)
	}
	if err := ps.DeleteHealthRecord(ctx, first.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("double delete: err = %v", err)
	}
}

func TestGalleryAndAlbums(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	addPet(t, ps, "Luna")

	loc := &model.GeoPoint{Latitude: 19.43, Longitude: -99.13, Address: "Parque México"}
	p1, err := ps.AddGalleryPhoto(ctx, "file:///1.jpg", loc)
	if err != nil {
		t.Fatalf("AddGalleryPhoto: %v", err)
	}
	if p1.IsFavorite || !reflect.DeepEqual(p1.Albums, []string{model.AlbumAllID}) {
		t.Fatalf("new photo = %+v", p1)
	}
	p2, err := ps.AddGalleryPhoto(ctx, "file:///2.jpg", nil)
	if err != nil {
		t.Fatalf("AddGalleryPhoto: %v", err)
	}

	// Newest first.
	if got := ps.Photos(); got[0].ID != p2.ID {
		t.Fatalf("photos[0] = %s, want newest", got[0].ID)
	}

	if err := ps.ToggleFavorite(ctx, p1.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !ps.Photos()[1].IsFavorite {
		t.Fatalf("favorite flag not set")
	}
	if err := ps.ToggleFavorite(ctx, p1.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if ps.Photos()[1].IsFavorite {
		t.Fatalf("favorite flag not cleared")
	}

	// The implicit album exists before any album is created.
	albums := ps.Albums()
	if len(albums) != 1 || albums[0].ID != model.AlbumAllID || albums[0].Name != model.AlbumAllName {
		t.Fatalf("albums = %+v", albums)
	}

	vac, err := ps.CreateAlbum(ctx, "Vacaciones")
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	albums = ps.Albums()
	if len(albums) != 2 || albums[0].ID != model.AlbumAllID || albums[1].ID != vac.ID {
		t.Fatalf("albums = %+v", albums)
	}

	if err := ps.AddPhotoToAlbum(ctx, p1.ID, vac.ID); err != nil {
		t.Fatalf("AddPhotoToAlbum: %v", err)
	}
	// Adding twice is a no-op.
	if err := ps.AddPhotoToAlbum(ctx, p1.ID, vac.ID); err != nil {
		t.Fatalf("AddPhotoToAlbum (again): %v", err)
	}
	var got model.GalleryPhoto
	for _, p := range ps.Photos() {
		if p.ID == p1.ID {
			got = p
		}
	}
	if !reflect.DeepEqual(got.Albums, []string{model.AlbumAllID, vac.ID}) {
		t.Fatalf("albums on photo = %v", got.Albums)
	}

	if err := ps.DeletePhoto(ctx, p2.ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if got := len(ps.Photos()); got != 1 {
		t.Fatalf("photo count = %d", got)
	}
}

func TestRoundTripPersistence(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	ps := newPetStore(t, st, "u1")
	tick(ps, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	if _, err := ps.AddPet(ctx, model.Pet{Nombre: "Luna", Especie: "Perro", Raza: "Golden Retriever", Peso: "30"}); err != nil {
		t.Fatalf("AddPet: %v", err)
	}
	addPet(t, ps, "Michi")
	if _, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: "Vacuna", Category: model.CategoryVaccine, Date: 15, Month: 5, Year: 2025}); err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	if _, err := ps.UpdateMood(ctx, model.MoodUpdate{Happiness: intp(90), Energy: intp(40)}); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}
	if _, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{Title: "Control", Doctor: "Dr. Méndez"}); err != nil {
		t.Fatalf("AddHealthRecord: %v", err)
	}
	if _, err := ps.AddGalleryPhoto(ctx, "file:///1.jpg", &model.GeoPoint{Latitude: 1, Longitude: 2}); err != nil {
		t.Fatalf("AddGalleryPhoto: %v", err)
	}
	if _, err := ps.CreateAlbum(ctx, "Vacaciones"); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	ps2 := newPetStore(t, st, "u1")
	if !reflect.DeepEqual(ps.Pets(), ps2.Pets()) {
		t.Errorf("pets differ after reload")
	}
	if ps.ActivePetID() != ps2.ActivePetID() {
		t.Errorf("active pet differs after reload")
	}
	if !reflect.DeepEqual(ps.Events(), ps2.Events()) {
		t.Errorf("events differ after reload")
	}
	if ps.Mood() != ps2.Mood() {
		t.Errorf("mood differs after reload")
	}
	if !reflect.DeepEqual(ps.MoodHistory(), ps2.MoodHistory()) {
		t.Errorf("mood history differs after reload")
	}
	if !reflect.DeepEqual(ps.HealthHistory(), ps2.HealthHistory()) {
		t.Errorf("health history differs after reload")
	}
	if !reflect.DeepEqual(ps.Photos(), ps2.Photos()) {
		t.Errorf("photos differ after reload")
	}
	if !reflect.DeepEqual(ps.Albums(), ps2.Albums()) {
		t.Errorf("albums differ after reload")
	}
}

func TestInertStore_NoSession(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "")

	// Reads are empty, never a crash.
	if got := ps.Pets(); len(got) != 0 {
		t.Fatalf("pets = %v", got)
	}
	if got := ps.Mood(); got != model.DefaultMood() {
		t.Fatalf("mood = %+v", got)
	}
	if got := ps.Albums(); len(got) != 1 || got[0].ID != model.AlbumAllID {
		t.Fatalf("albums = %+v", got)
	}

	// Writes are refused.
	if _, err := ps.AddPet(ctx, model.Pet{Nombre: "Luna"}); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("AddPet: err = %v", err)
	}
	if _, err := ps.UpdateMood(ctx, model.MoodUpdate{Happiness: intp(1)}); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("UpdateMood: err = %v", err)
	}
	if err := ps.DeletePet(ctx, "x"); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("DeletePet: err = %v", err)
	}
}

func TestPartitionIsolation(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()

	psA := newPetStore(t, st, "user-a")
	psB := newPetStore(t, st, "user-b")
	addPet(t, psA, "Luna")
	if _, err := psB.AddPet(ctx, model.Pet{Nombre: "Rex"}); err != nil {
		t.Fatalf("AddPet: %v", err)
	}

	a2 := newPetStore(t, st, "user-a")
	if got := a2.Pets(); len(got) != 1 || got[0].Nombre != "Luna" {
		t.Fatalf("user-a sees %+v", got)
	}
	b2 := newPetStore(t, st, "user-b")
	if got := b2.Pets(); len(got) != 1 || got[0].Nombre != "Rex" {
		t.Fatalf("user-b sees %+v", got)
	}
}

type recordingScheduler struct {
	scheduled []string
	canceled  []string
}

func (r *recordingScheduler) Schedule(_ context.Context, id string, _ time.Time, _, _ string) error {
	r.scheduled = append(r.scheduled, id)
	return nil
}

func (r *recordingScheduler) Cancel(_ context.Context, id string) error {
	r.canceled = append(r.canceled, id)
	return nil
}

func TestCalendarEvents_DriveReminders(t *testing.T) {
	ctx := context.Background()
	ps := newPetStore(t, storage.NewMemory(), "u1")
	sched := &recordingScheduler{}
	ps.SetScheduler(sched)
	addPet(t, ps, "Luna")

	id, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{Title: "Vacuna", Date: 12, Month: 8, Year: 2026})
	if err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	want := fmt.Sprintf("event-%d", id)
	if len(sched.scheduled) != 1 || sched.scheduled[0] != want {
		t.Fatalf("scheduled = %v, want [%s]", sched.scheduled, want)
	}

	if err := ps.DeleteCalendarEvent(ctx, id); err != nil {
		t.Fatalf("DeleteCalendarEvent: %v", err)
	}
	if len(sched.canceled) != 1 || sched.canceled[0] != want {
		t.Fatalf("canceled = %v, want [%s]", sched.canceled, want)
	}
}

func TestPetStore_PersistenceFailuresAreWarnings(t *testing.T) {
	ctx := context.Background()
	broken := &brokenStore{Store: storage.NewMemory(), failSet: true}
	ps := newPetStore(t, broken, "u1")

	id, err := ps.AddPet(ctx, model.Pet{Nombre: "Luna"})
	if err != nil {
		t.Fatalf("AddPet should succeed in memory: %v", err)
	}
	if ps.ActivePetID() != id {
		t.Fatalf("in-memory state not updated")
	}
	if ps.PersistFailures() == 0 {
		t.Fatalf("failed writes not counted")
	}
}
