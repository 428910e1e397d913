// Command petpal is a terminal front end for the pet-care journal core:
// it wires config, logging, storage and the services together the same way
// a UI shell would.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petpalapp/petpal/internal/config"
	"github.com/petpalapp/petpal/internal/derive"
	"github.com/petpalapp/petpal/internal/model"
	"github.com/petpalapp/petpal/internal/service"
	"github.com/petpalapp/petpal/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `petpal CLI
Usage:
  petpal <cmd> [args]

Commands:
  version
  register    -u <username> -e <email> -p <password>
  login       -e <email> -p <password>
  logout
  whoami
  pets
  add-pet     -nombre <name> [-especie s] [-raza r] [-peso kg] [-edad e]
  delete-pet  -id <petId>
  switch-pet  -id <petId>
  status                                  (weight health + mood summary)
  mood                                    (current snapshot and history)
  mood-set    [-happiness n] [-energy n] [-calmness n] [-playfulness n] [-appetite n]
  events      -month <0-11> -year <yyyy> [-day d]
  add-event   -title t -category c -date d -month m -year y [-time hh:mm]
  records
  add-record  -title t -doctor d [-category c] [-notes n]
  photos      [-album id|favorites]
  add-photo   -uri <uri>
  fav         -id <photoId>
  albums
  add-album   -name <name>
  export      [-o file]
  import      -file <backup.json>
  clear
  size
`)
	os.Exit(2)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// openPets opens the pet store for the logged-in user, inert when logged out.
func openPets(ctx context.Context, st storage.Store, log *zap.Logger, dir *service.Directory) *service.PetStore {
	uid := ""
	if u, ok := dir.CurrentUser(); ok {
		uid = u.ID
	}
	ps, err := service.NewPetStore(ctx, st, log, uid)
	if err != nil {
		fail(err)
	}
	return ps
}

func requireSession(dir *service.Directory) model.User {
	u, ok := dir.CurrentUser()
	if !ok {
		fail(fmt.Errorf("not logged in"))
	}
	return u
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fail(err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := storage.Open(storage.Driver(cfg.Storage.Driver), cfg.Storage.Path)
	if err != nil {
		fail(err)
	}
	defer func() { _ = st.Close() }()

	dir, err := service.NewDirectory(ctx, st, logger)
	if err != nil {
		fail(err)
	}

	switch cmd {

	case "version":
		fmt.Printf("petpal %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		user, err := dir.Register(ctx, *u, *e, *p)
		if err != nil {
			fail(err)
		}
		fmt.Println("registered and logged in as", user.Username)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		user, err := dir.Login(ctx, *e, *p)
		if err != nil {
			fail(err)
		}
		fmt.Println("logged in as", user.Username)

	case "logout":
		dir.Logout(ctx)
		fmt.Println("logged out")

	case "whoami":
		u := requireSession(dir)
		fmt.Printf("%s <%s>\n", u.Username, u.Email)

	case "pets":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		type row struct {
			ID, Nombre, Especie, Raza string
			Active                    bool
		}
		var rows []row
		for _, p := range ps.Pets() {
			rows = append(rows, row{p.ID, p.Nombre, p.Especie, p.Raza, p.ID == ps.ActivePetID()})
		}
		printJSON(rows)

	case "add-pet":
		fs := flag.NewFlagSet("add-pet", flag.ExitOnError)
		nombre := fs.String("nombre", "", "pet name")
		especie := fs.String("especie", "", "species")
		raza := fs.String("raza", "", "breed")
		peso := fs.String("peso", "", "weight in kg")
		edad := fs.String("edad", "", "age")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		id, err := ps.AddPet(ctx, model.Pet{Nombre: *nombre, Especie: *especie, Raza: *raza, Peso: *peso, Edad: *edad})
		if err != nil {
			fail(err)
		}
		fmt.Println(id)

	case "delete-pet":
		fs := flag.NewFlagSet("delete-pet", flag.ExitOnError)
		id := fs.String("id", "", "pet id")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		if err := ps.DeletePet(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("deleted")

	case "switch-pet":
		fs := flag.NewFlagSet("switch-pet", flag.ExitOnError)
		id := fs.String("id", "", "pet id")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		if err := ps.SwitchActivePet(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("active pet:", *id)

	case "status":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		pet, ok := ps.ActivePet()
		if !ok {
			fail(fmt.Errorf("no pets yet"))
		}
		ws := derive.WeightHealth(pet)
		mood := ps.Mood()
		fmt.Printf("%s %s: %s %s\n", ws.Emoji, pet.Nombre, ws.Status, ws.Message)
		fmt.Println("mood:", derive.DescribeMood(mood))
		overall := derive.SummarizeMood(mood)
		fmt.Printf("%s %s: %s\n", overall.Emoji, overall.Mood, overall.Description)

	case "mood":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		printJSON(ps.Mood())
		printJSON(ps.MoodHistory())

	case "mood-set":
		fs := flag.NewFlagSet("mood-set", flag.ExitOnError)
		metrics := map[string]*int{}
		for _, name := range []string{"happiness", "energy", "calmness", "playfulness", "appetite"} {
			metrics[name] = fs.Int(name, -1, name+" 0-100")
		}
		_ = fs.Parse(args)
		opt := func(name string) *int {
			if v := *metrics[name]; v >= 0 {
				return &v
			}
			return nil
		}
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		entry, err := ps.UpdateMood(ctx, model.MoodUpdate{
			Happiness:   opt("happiness"),
			Energy:      opt("energy"),
			Calmness:    opt("calmness"),
			Playfulness: opt("playfulness"),
			Appetite:    opt("appetite"),
		})
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s (%s)\n", entry.Mood, entry.Date)

	case "events":
		fs := flag.NewFlagSet("events", flag.ExitOnError)
		month := fs.Int("month", -1, "month 0-11")
		year := fs.Int("year", 0, "year")
		day := fs.Int("day", 0, "day of month")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		all := ps.Events()
		if *day > 0 {
			printJSON(derive.EventsForDay(all, *month, *year, *day))
		} else {
			printJSON(derive.UpcomingEvents(all, *month, *year))
		}

	case "add-event":
		fs := flag.NewFlagSet("add-event", flag.ExitOnError)
		title := fs.String("title", "", "event title")
		category := fs.String("category", model.CategoryVet, "vaccine|bath|walk|vet|treatment")
		date := fs.Int("date", 1, "day of month")
		month := fs.Int("month", 0, "month 0-11")
		year := fs.Int("year", time.Now().Year(), "year")
		at := fs.String("time", "", "time of day")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		id, err := ps.AddCalendarEvent(ctx, model.CalendarEvent{
			Title: *title, Category: *category, Date: *date, Month: *month, Year: *year, Time: *at,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println(id)

	case "records":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		printJSON(ps.HealthHistory())

	case "add-record":
		fs := flag.NewFlagSet("add-record", flag.ExitOnError)
		title := fs.String("title", "", "record title")
		doctor := fs.String("doctor", "", "attending doctor")
		category := fs.String("category", model.HealthCheckup, "vaccine|checkup|treatment|consultation")
		notes := fs.String("notes", "", "notes")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		rec, err := ps.AddHealthRecord(ctx, model.HealthRecordInput{
			Title: *title, Doctor: *doctor, Category: *category, Notes: *notes,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println(rec.ID)

	case "photos":
		fs := flag.NewFlagSet("photos", flag.ExitOnError)
		album := fs.String("album", derive.SelectorAll, "all|favorites|<albumId>")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		printJSON(derive.FilterPhotos(ps.Photos(), *album))

	case "add-photo":
		fs := flag.NewFlagSet("add-photo", flag.ExitOnError)
		uri := fs.String("uri", "", "photo uri")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		photo, err := ps.AddGalleryPhoto(ctx, *uri, nil)
		if err != nil {
			fail(err)
		}
		fmt.Println(photo.ID)

	case "fav":
		fs := flag.NewFlagSet("fav", flag.ExitOnError)
		id := fs.String("id", "", "photo id")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		if err := ps.ToggleFavorite(ctx, *id); err != nil {
			fail(err)
		}

	case "albums":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		printJSON(ps.Albums())

	case "add-album":
		fs := flag.NewFlagSet("add-album", flag.ExitOnError)
		name := fs.String("name", "", "album name")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		album, err := ps.CreateAlbum(ctx, *name)
		if err != nil {
			fail(err)
		}
		fmt.Println(album.ID)

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("o", "", "output file (default stdout)")
		_ = fs.Parse(args)
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		data, err := ps.Export(ctx)
		if err != nil {
			fail(err)
		}
		if *out == "" {
			printJSON(data)
			break
		}
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(*out, b, 0o600); err != nil {
			fail(err)
		}

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		file := fs.String("file", "", "backup file")
		_ = fs.Parse(args)
		requireSession(dir)
		b, err := os.ReadFile(*file)
		if err != nil {
			fail(err)
		}
		var data map[string]json.RawMessage
		if err := json.Unmarshal(b, &data); err != nil {
			fail(err)
		}
		ps := openPets(ctx, st, logger, dir)
		if err := ps.Import(ctx, data); err != nil {
			fail(err)
		}
		fmt.Println("imported", len(data), "keys")

	case "clear":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		if err := ps.Clear(ctx); err != nil {
			fail(err)
		}
		fmt.Println("cleared")

	case "size":
		requireSession(dir)
		ps := openPets(ctx, st, logger, dir)
		n, err := ps.StorageSize(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%.2f KB\n", float64(n)/1024)

	default:
		usage()
	}
}
