// Command client is a terminal front end for the campus API. It drives the
// session context the same way the web client does: bootstrap a persisted
// session, sign in or register, then show who you are and what you may do.
//
// Usage:
//
//	client -login -email asha@example.com -password secret1
//	client -register -email new@example.com -password secret1 -name "New User"
//	client -whoami
//	client -logout
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/SmartAcademic/SA-Backend/internal/session"
	"github.com/joho/godotenv"
)

type savedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sa-session.json"
	}
	return filepath.Join(home, ".sa-session.json")
}

func loadTokens(id *session.HTTPIdentity) {
	raw, err := os.ReadFile(tokenPath())
	if err != nil {
		return
	}
	var saved savedTokens
	if json.Unmarshal(raw, &saved) != nil {
		return
	}
	id.SetTokens(saved.AccessToken, saved.RefreshToken)
}

func saveTokens(id *session.HTTPIdentity) {
	access, refresh := id.Tokens()
	if access == "" {
		os.Remove(tokenPath())
		return
	}
	raw, err := json.Marshal(savedTokens{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return
	}
	if err := os.WriteFile(tokenPath(), raw, 0600); err != nil {
		log.Println("could not persist session:", err)
	}
}

func main() {
	godotenv.Load(".env.local")

	defaultServer := os.Getenv("API_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:5050"
	}

	var (
		server   = flag.String("server", defaultServer, "API base URL")
		doLogin  = flag.Bool("login", false, "sign in with -email and -password")
		doSignUp = flag.Bool("register", false, "create an account and sign in")
		doLogout = flag.Bool("logout", false, "sign out and forget the session")
		whoami   = flag.Bool("whoami", false, "show the current session (default)")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		fullName = flag.String("name", "", "full name (registration)")
		role     = flag.String("role", "student", "account role (registration)")
	)
	flag.Parse()

	id := session.NewHTTPIdentity(*server)
	loadTokens(id)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sc := session.New(id, *server != "")
	sc.Subscribe(func(s session.Snapshot) {
		log.Println("session state:", s.State)
	})

	if err := sc.Bootstrap(ctx); err != nil && err != session.ErrNotConfigured {
		log.Println("bootstrap:", err)
	}

	switch {
	case *doLogin:
		if err := sc.SignIn(ctx, *email, *password); err != nil {
			log.Fatalln("sign-in failed:", err)
		}
	case *doSignUp:
		if err := sc.SignUp(ctx, *email, *password, *fullName, *role); err != nil {
			log.Fatalln("registration failed:", err)
		}
	case *doLogout:
		sc.SignOut(ctx)
		saveTokens(id)
		fmt.Println("Signed out.")
		return
	default:
		*whoami = true
	}

	saveTokens(id)

	snap := sc.Current()
	if snap.State != session.StateAuthenticated {
		fmt.Println("Not signed in.")
		if *whoami {
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Signed in as %s <%s>\n", snap.Profile.FullName, snap.Profile.Email)
	fmt.Printf("Role: %s (admin=%v faculty=%v student=%v)\n",
		snap.Profile.Role, sc.IsAdmin(), sc.IsFaculty(), sc.IsStudent())
	fmt.Printf("Session expires: %s\n", snap.Session.ExpiresAt.Local().Format(time.RFC1123))
}
