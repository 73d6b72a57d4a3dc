package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

// Phrases that signal the model could not answer from the provided
// context. Matched case-insensitively as substrings.
var unknownPhrases = []string{
	"tidak tahu",
	"tidak memiliki informasi",
	"tidak tersedia",
	"saya tidak yakin",
	"tidak ada",
}

const chatSystemPrompt = "Kamu adalah asisten virtual kelompok riset. " +
	"Jawab pertanyaan pengguna hanya berdasarkan konteks yang diberikan, " +
	"dalam bahasa yang sama dengan pertanyaan."

type ChatResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ChatbotService interface {
	ProcessChat(ctx context.Context, question string) (*ChatResult, error)
}

type chatbotService struct {
	log           *logger.Logger
	aboutRepo     repos.AboutRepo
	contactRepo   repos.ContactRepo
	researchRepo  repos.ResearchRepo
	pubRepo       repos.PublicationRepo
	memberRepo    repos.MemberRepo
	completionCli OpenAIClient
}

func NewChatbotService(
	log *logger.Logger,
	aboutRepo repos.AboutRepo,
	contactRepo repos.ContactRepo,
	researchRepo repos.ResearchRepo,
	pubRepo repos.PublicationRepo,
	memberRepo repos.MemberRepo,
	completionCli OpenAIClient,
) ChatbotService {
	return &chatbotService{
		log:           log.With("service", "ChatbotService"),
		aboutRepo:     aboutRepo,
		contactRepo:   contactRepo,
		researchRepo:  researchRepo,
		pubRepo:       pubRepo,
		memberRepo:    memberRepo,
		completionCli: completionCli,
	}
}

// ProcessChat grounds the question in a snapshot of the site content,
// forwards it to the completion API, and post-processes the answer.
func (cs *chatbotService) ProcessChat(ctx context.Context, question string) (*ChatResult, error) {
	contextBlock, err := cs.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	prompt := contextBlock + "\nPertanyaan: " + question
	answer, err := cs.completionCli.GenerateText(ctx, chatSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	answer = cs.addContactIfNeeded(ctx, answer)

	return &ChatResult{Question: question, Answer: answer}, nil
}

// buildContext renders the site content as one text block. Sections are
// emitted in a fixed order so the output is deterministic for a given
// snapshot; an empty table yields an empty section.
func (cs *chatbotService) buildContext(ctx context.Context) (string, error) {
	var (
		about        *types.About
		contacts     []*types.Contact
		researches   []*types.Research
		publications []*types.Publication
		members      []*types.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		about, err = cs.aboutRepo.Get(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = cs.contactRepo.List(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		researches, err = cs.researchRepo.ListWithRelations(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		publications, err = cs.pubRepo.List(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = cs.memberRepo.ListWithRelations(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to assemble chat context: %w", err)
	}

	var b strings.Builder
	writeAboutSection(&b, about)
	writeContactSection(&b, contacts)
	writeResearchSection(&b, researches)
	writePublicationSection(&b, publications)
	writeMemberSection(&b, members)
	return b.String(), nil
}

// addContactIfNeeded appends a contact suggestion when the answer reads
// like "I don't know". The suggestion is skipped when the About profile
// is missing or has no email.
func (cs *chatbotService) addContactIfNeeded(ctx context.Context, answer string) string {
	lower := strings.ToLower(answer)
	matched := false
	for _, phrase := range unknownPhrases {
		if strings.Contains(lower, phrase) {
			matched = true
			break
		}
	}
	if !matched {
		return answer
	}

	about, err := cs.aboutRepo.Get(ctx, nil)
	if err != nil {
		cs.log.Warn("could not load profile for contact suggestion", "error", err)
		return answer
	}
	if about == nil || about.Email == "" {
		return answer
	}
	return answer + "\n\nUntuk informasi lebih lanjut, silakan hubungi kami melalui email " + about.Email + "."
}

func writeAboutSection(b *strings.Builder, about *types.About) {
	if about == nil {
		return
	}
	b.WriteString("Tentang Kami:\n")
	fmt.Fprintf(b, "Deskripsi: %s\n", about.Description.ID)
	fmt.Fprintf(b, "Description: %s\n", about.Description.EN)
	if about.Purpose.ID != "" || about.Purpose.EN != "" {
		fmt.Fprintf(b, "Tujuan: %s\n", about.Purpose.ID)
		fmt.Fprintf(b, "Purpose: %s\n", about.Purpose.EN)
	}
	if about.Email != "" {
		fmt.Fprintf(b, "Email: %s\n", about.Email)
	}
	if about.Phone != "" {
		fmt.Fprintf(b, "Telepon: %s\n", about.Phone)
	}
	if about.Address != "" {
		fmt.Fprintf(b, "Alamat: %s\n", about.Address)
	}
	b.WriteString("\n")
}

func writeContactSection(b *strings.Builder, contacts []*types.Contact) {
	if len(contacts) == 0 {
		return
	}
	b.WriteString("Pesan Masuk:\n")
	for _, c := range contacts {
		fmt.Fprintf(b, "- %s (%s): %s\n", c.Name, c.Email, c.Subject)
	}
	b.WriteString("\n")
}

func writeResearchSection(b *strings.Builder, researches []*types.Research) {
	if len(researches) == 0 {
		return
	}
	b.WriteString("Penelitian:\n")
	for _, r := range researches {
		fmt.Fprintf(b, "ID: %s\n", r.Title.ID)
		fmt.Fprintf(b, "EN: %s\n", r.Title.EN)
		fmt.Fprintf(b, "Periode: %s s/d %s\n", formatYearMonth(r.StartDate), formatYearMonth(r.EndDate))
		fmt.Fprintf(b, "Anggota: %s\n", joinResearchMembers(r.Members))
		fmt.Fprintf(b, "Mitra: %s\n", joinResearchPartners(r.Partners))
		fmt.Fprintf(b, "Jumlah progres: %d\n", len(r.Progresses))
		fmt.Fprintf(b, "Publikasi: %s\n", publicationTitle(r.Publication))
		if len(r.Progresses) == 0 {
			b.WriteString("Tidak ada progres\n")
		} else {
			for i, p := range r.Progresses {
				fmt.Fprintf(b, "%d. ID: %s EN: %s\n", i+1, p.Title.ID, p.Title.EN)
			}
		}
		b.WriteString("\n")
	}
}

func writePublicationSection(b *strings.Builder, publications []*types.Publication) {
	if len(publications) == 0 {
		return
	}
	b.WriteString("Publikasi:\n")
	for _, p := range publications {
		fmt.Fprintf(b, "- %s", p.Title)
		if p.Authors != "" {
			fmt.Fprintf(b, " (%s)", p.Authors)
		}
		if p.Journal != "" {
			fmt.Fprintf(b, ", %s", p.Journal)
		}
		if p.Year != 0 {
			fmt.Fprintf(b, ", %d", p.Year)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeMemberSection(b *strings.Builder, members []*types.Member) {
	if len(members) == 0 {
		return
	}
	b.WriteString("Anggota Kelompok:\n")
	for _, m := range members {
		fmt.Fprintf(b, "Nama: %s\n", m.Name)
		fmt.Fprintf(b, "Status: %s\n", m.StatusLabel())
		fmt.Fprintf(b, "Kontak: %s\n", memberContactLine(m))
		if links := decodeLinks(m.PublicationLinks); len(links) > 0 {
			fmt.Fprintf(b, "Link Publikasi: %s\n", strings.Join(links, ", "))
		}
		if m.Role != "" {
			fmt.Fprintf(b, "Peran: %s\n", m.Role)
		}
		fmt.Fprintf(b, "Pendidikan: %s\n", joinEducations(m.Educations))
		fmt.Fprintf(b, "Keahlian: %s\n", joinExpertises(m.Expertises))
		fmt.Fprintf(b, "Penelitian: %s\n", joinMemberResearches(m.Researches))
		b.WriteString("\n")
	}
}

func formatYearMonth(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01")
}

func publicationTitle(p *types.Publication) string {
	if p == nil {
		return "-"
	}
	return p.Title
}

func joinResearchMembers(rows []*types.ResearchMember) string {
	names := make([]string, 0, len(rows))
	for _, rm := range rows {
		if rm.Member != nil {
			names = append(names, rm.Member.Name)
		}
	}
	return strings.Join(names, ", ")
}

func joinResearchPartners(rows []*types.ResearchPartner) string {
	names := make([]string, 0, len(rows))
	for _, rp := range rows {
		if rp.Partner != nil {
			names = append(names, rp.Partner.Name)
		}
	}
	return strings.Join(names, ", ")
}

func joinEducations(rows []*types.MemberEducation) string {
	parts := make([]string, 0, len(rows))
	for _, e := range rows {
		entry := e.Degree + " " + e.Institution
		if e.Year != 0 {
			entry = fmt.Sprintf("%s (%d)", entry, e.Year)
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}

func joinExpertises(rows []*types.MemberExpertiseLink) string {
	parts := make([]string, 0, len(rows))
	for _, link := range rows {
		if link.Expertise == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("ID: %s atau EN: %s", link.Expertise.Name.ID, link.Expertise.Name.EN))
	}
	return strings.Join(parts, ", ")
}

func joinMemberResearches(rows []*types.ResearchMember) string {
	parts := make([]string, 0, len(rows))
	for _, rm := range rows {
		if rm.Research == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("ID: %s atau EN: %s", rm.Research.Title.ID, rm.Research.Title.EN))
	}
	return strings.Join(parts, ", ")
}

func memberContactLine(m *types.Member) string {
	switch {
	case m.Email != "" && m.Phone != "":
		return m.Email + " / " + m.Phone
	case m.Email != "":
		return m.Email
	case m.Phone != "":
		return m.Phone
	default:
		return "-"
	}
}

func decodeLinks(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var links []string
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil
	}
	return links
}
