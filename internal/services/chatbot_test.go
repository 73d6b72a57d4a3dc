package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

type fakeAboutRepo struct {
	repos.AboutRepo
	about *types.About
}

func (f *fakeAboutRepo) Get(ctx context.Context, tx *gorm.DB) (*types.About, error) {
	return f.about, nil
}

type fakeContactRepo struct {
	repos.ContactRepo
	contacts []*types.Contact
}

func (f *fakeContactRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error) {
	return f.contacts, nil
}

type fakeResearchRepo struct {
	repos.ResearchRepo
	researches []*types.Research
}

func (f *fakeResearchRepo) ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Research, error) {
	return f.researches, nil
}

type fakePublicationRepo struct {
	repos.PublicationRepo
	publications []*types.Publication
}

func (f *fakePublicationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Publication, error) {
	return f.publications, nil
}

type fakeMemberRepo struct {
	repos.MemberRepo
	members []*types.Member
}

func (f *fakeMemberRepo) ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Member, error) {
	return f.members, nil
}

type fakeCompletionClient struct {
	lastSystem string
	lastUser   string
	answer     string
	err        error
}

func (f *fakeCompletionClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func testChatbot(t *testing.T, completion *fakeCompletionClient, about *types.About) *chatbotService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}

	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	budi := &types.Member{
		ID:       uuid.New(),
		Name:     "Budi",
		IsAlumni: false,
		IsHead:   true,
		Email:    "budi@example.org",
		Expertises: []*types.MemberExpertiseLink{
			{Expertise: &types.MemberExpertise{Name: types.LocalizedText{ID: "Ekologi Laut", EN: "Marine Ecology"}}},
		},
		Educations: []*types.MemberEducation{
			{Degree: "S2 Biologi", Institution: "UI", Year: 2015},
		},
	}
	research := &types.Research{
		ID:        uuid.New(),
		Title:     types.LocalizedText{ID: "Karang Purba", EN: "Ancient Coral"},
		StartDate: &start,
		Members: []*types.ResearchMember{
			{Member: budi},
		},
		Partners: []*types.ResearchPartner{
			{Partner: &types.Partner{Name: "LIPI"}},
		},
	}
	budi.Researches = []*types.ResearchMember{{Research: research}}

	svc := NewChatbotService(
		log,
		&fakeAboutRepo{about: about},
		&fakeContactRepo{},
		&fakeResearchRepo{researches: []*types.Research{research}},
		&fakePublicationRepo{},
		&fakeMemberRepo{members: []*types.Member{budi}},
		completion,
	)
	return svc.(*chatbotService)
}

func TestBuildContextFormatsResearchAndMembers(t *testing.T) {
	t.Parallel()
	svc := testChatbot(t, &fakeCompletionClient{answer: "ok"}, &types.About{
		Description: types.LocalizedText{
			ID: "Kelompok riset terumbu karang",
			EN: "Coral reef research group",
		},
		Email: "info@example.org",
	})

	got, err := svc.buildContext(context.Background())
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}

	wantSubstrings := []string{
		"Tentang Kami:",
		"ID: Karang Purba",
		"EN: Ancient Coral",
		"Periode: 2023-01 s/d N/A",
		"Anggota: Budi",
		"Mitra: LIPI",
		"Publikasi: -",
		"Tidak ada progres",
		"Status: Ketua Kelompok Riset",
		"Keahlian: ID: Ekologi Laut atau EN: Marine Ecology",
		"Penelitian: ID: Karang Purba atau EN: Ancient Coral",
		"Pendidikan: S2 Biologi UI (2015)",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q\ncontext:\n%s", want, got)
		}
	}

	// Section order is fixed.
	aboutIdx := strings.Index(got, "Tentang Kami:")
	researchIdx := strings.Index(got, "Penelitian:")
	memberIdx := strings.Index(got, "Anggota Kelompok:")
	if !(aboutIdx < researchIdx && researchIdx < memberIdx) {
		t.Errorf("sections out of order: about=%d research=%d members=%d", aboutIdx, researchIdx, memberIdx)
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	t.Parallel()
	svc := testChatbot(t, &fakeCompletionClient{answer: "ok"}, &types.About{Description: types.LocalizedText{ID: "x", EN: "y"}})

	first, err := svc.buildContext(context.Background())
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}
	second, err := svc.buildContext(context.Background())
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}
	if first != second {
		t.Error("context not deterministic for identical snapshot")
	}
}

func TestProcessChatEchoesQuestionAndComposesPrompt(t *testing.T) {
	t.Parallel()
	completion := &fakeCompletionClient{answer: "Terumbu karang adalah ekosistem laut."}
	svc := testChatbot(t, completion, &types.About{Description: types.LocalizedText{ID: "x", EN: "y"}})

	question := "Apa itu terumbu karang?"
	result, err := svc.ProcessChat(context.Background(), question)
	if err != nil {
		t.Fatalf("ProcessChat: %v", err)
	}
	if result.Question != question {
		t.Errorf("question not echoed verbatim: got=%q", result.Question)
	}
	if result.Answer != completion.answer {
		t.Errorf("unexpected answer: got=%q", result.Answer)
	}
	if !strings.HasSuffix(completion.lastUser, "\nPertanyaan: "+question) {
		t.Errorf("prompt does not end with question suffix: got=%q", completion.lastUser)
	}
}

func TestAddContactIfNeeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		answer     string
		aboutEmail string
		wantAppend bool
	}{
		{"unknown phrase lowercase", "maaf, saya tidak tahu jawabannya", "info@example.org", true},
		{"unknown phrase mixed case", "Saya Tidak Yakin tentang hal itu", "info@example.org", true},
		{"phrase inside sentence", "data tersebut tidak tersedia saat ini", "info@example.org", true},
		{"confident answer untouched", "Kelompok riset berdiri tahun 2019.", "info@example.org", false},
		{"no about email", "saya tidak tahu", "", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			about := &types.About{Description: types.LocalizedText{ID: "x", EN: "y"}, Email: tc.aboutEmail}
			if tc.aboutEmail == "" {
				about.Email = ""
			}
			svc := testChatbot(t, &fakeCompletionClient{}, about)

			got := svc.addContactIfNeeded(context.Background(), tc.answer)
			appended := strings.Contains(got, "hubungi kami")
			if appended != tc.wantAppend {
				t.Errorf("append=%v want=%v (answer=%q)", appended, tc.wantAppend, got)
			}
			if tc.wantAppend && !strings.Contains(got, tc.aboutEmail) {
				t.Errorf("appended line missing email: %q", got)
			}
			if !strings.HasPrefix(got, tc.answer) {
				t.Errorf("original answer mutated: %q", got)
			}
		})
	}
}

func TestProcessChatPropagatesUpstreamError(t *testing.T) {
	t.Parallel()
	completion := &fakeCompletionClient{err: apierr.Upstream(errors.New("connection refused"))}
	svc := testChatbot(t, completion, &types.About{Description: types.LocalizedText{ID: "x", EN: "y"}})

	_, err := svc.ProcessChat(context.Background(), "halo")
	if err == nil {
		t.Fatal("expected upstream error to propagate")
	}
}
