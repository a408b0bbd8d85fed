package mocks

import (
	"context"
	"time"

	"larp-server/internal/models"
	"larp-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// BackgroundService is a mock of service.BackgroundService.
type BackgroundService struct {
	mock.Mock
}

func (m *BackgroundService) ResolveCurrentStep(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.BackgroundResolution, error) {
	args := m.Called(ctx, actor, characterID)
	res, _ := args.Get(0).(*models.BackgroundResolution)
	return res, args.Error(1)
}

func (m *BackgroundService) SubmitAnswer(ctx context.Context, actor models.Actor, characterID, stepID, choiceID uuid.UUID, playerText string) (*models.SubmitResult, error) {
	args := m.Called(ctx, actor, characterID, stepID, choiceID, playerText)
	res, _ := args.Get(0).(*models.SubmitResult)
	return res, args.Error(1)
}

func (m *BackgroundService) ListAnswers(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.BgAnswer, error) {
	args := m.Called(ctx, actor, characterID)
	answers, _ := args.Get(0).([]models.BgAnswer)
	return answers, args.Error(1)
}

func (m *BackgroundService) UpdateAnswerText(ctx context.Context, actor models.Actor, characterID, answerID uuid.UUID, playerText string) error {
	args := m.Called(ctx, actor, characterID, answerID, playerText)
	return args.Error(0)
}

// CatalogService is a mock of service.CatalogService.
type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListSteps(ctx context.Context, actor models.Actor, factionID uuid.UUID) ([]models.BgStep, error) {
	args := m.Called(ctx, actor, factionID)
	steps, _ := args.Get(0).([]models.BgStep)
	return steps, args.Error(1)
}

func (m *CatalogService) CreateStep(ctx context.Context, actor models.Actor, factionID uuid.UUID, shortName, question string) (*models.BgStep, error) {
	args := m.Called(ctx, actor, factionID, shortName, question)
	step, _ := args.Get(0).(*models.BgStep)
	return step, args.Error(1)
}

func (m *CatalogService) UpdateStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, question string) (*models.BgStep, error) {
	args := m.Called(ctx, actor, stepID, shortName, question)
	step, _ := args.Get(0).(*models.BgStep)
	return step, args.Error(1)
}

func (m *CatalogService) MoveStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, direction service.MoveDirection) error {
	args := m.Called(ctx, actor, stepID, direction)
	return args.Error(0)
}

func (m *CatalogService) DeleteStep(ctx context.Context, actor models.Actor, stepID uuid.UUID) error {
	args := m.Called(ctx, actor, stepID)
	return args.Error(0)
}

func (m *CatalogService) ListChoices(ctx context.Context, actor models.Actor, stepID uuid.UUID) ([]models.BgChoice, error) {
	args := m.Called(ctx, actor, stepID)
	choices, _ := args.Get(0).([]models.BgChoice)
	return choices, args.Error(1)
}

func (m *CatalogService) CreateChoice(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, text string, fillableByPlayer bool, prerequisiteID *uuid.UUID) (*models.BgChoice, error) {
	args := m.Called(ctx, actor, stepID, shortName, text, fillableByPlayer, prerequisiteID)
	choice, _ := args.Get(0).(*models.BgChoice)
	return choice, args.Error(1)
}

func (m *CatalogService) UpdateChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID, shortName, text string, fillableByPlayer bool) (*models.BgChoice, error) {
	args := m.Called(ctx, actor, choiceID, shortName, text, fillableByPlayer)
	choice, _ := args.Get(0).(*models.BgChoice)
	return choice, args.Error(1)
}

func (m *CatalogService) SetPrerequisite(ctx context.Context, actor models.Actor, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error {
	args := m.Called(ctx, actor, choiceID, prerequisiteID)
	return args.Error(0)
}

func (m *CatalogService) DeleteChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID) error {
	args := m.Called(ctx, actor, choiceID)
	return args.Error(0)
}

// CharacterService is a mock of service.CharacterService.
type CharacterService struct {
	mock.Mock
}

func (m *CharacterService) CreateCharacter(ctx context.Context, actor models.Actor, input service.CreateCharacterInput) (*models.Character, error) {
	args := m.Called(ctx, actor, input)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *CharacterService) GetCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, actor, characterID)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *CharacterService) ListMyCharacters(ctx context.Context, actor models.Actor) ([]models.Character, error) {
	args := m.Called(ctx, actor)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}

func (m *CharacterService) ListLarpCharacters(ctx context.Context, actor models.Actor, larpID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, actor, larpID)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}

func (m *CharacterService) UpdateCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID, input service.UpdateCharacterInput) (*models.Character, error) {
	args := m.Called(ctx, actor, characterID, input)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *CharacterService) DeleteCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	args := m.Called(ctx, actor, characterID)
	return args.Error(0)
}

func (m *CharacterService) PlayerValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	args := m.Called(ctx, actor, characterID)
	return args.Error(0)
}

func (m *CharacterService) OrgaValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	args := m.Called(ctx, actor, characterID)
	return args.Error(0)
}

func (m *CharacterService) Unlock(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	args := m.Called(ctx, actor, characterID)
	return args.Error(0)
}

func (m *CharacterService) AddDocument(ctx context.Context, actor models.Actor, characterID uuid.UUID, name, documentURL string) (*models.CharacterDocument, error) {
	args := m.Called(ctx, actor, characterID, name, documentURL)
	doc, _ := args.Get(0).(*models.CharacterDocument)
	return doc, args.Error(1)
}

func (m *CharacterService) ListDocuments(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.CharacterDocument, error) {
	args := m.Called(ctx, actor, characterID)
	docs, _ := args.Get(0).([]models.CharacterDocument)
	return docs, args.Error(1)
}

func (m *CharacterService) DeleteDocument(ctx context.Context, actor models.Actor, characterID, documentID uuid.UUID) error {
	args := m.Called(ctx, actor, characterID, documentID)
	return args.Error(0)
}

// EnrollmentService is a mock of service.EnrollmentService.
type EnrollmentService struct {
	mock.Mock
}

func (m *EnrollmentService) ListLarps(ctx context.Context) ([]models.Larp, error) {
	args := m.Called(ctx)
	larps, _ := args.Get(0).([]models.Larp)
	return larps, args.Error(1)
}

func (m *EnrollmentService) GetLarp(ctx context.Context, larpID uuid.UUID) (*models.Larp, error) {
	args := m.Called(ctx, larpID)
	larp, _ := args.Get(0).(*models.Larp)
	return larp, args.Error(1)
}

func (m *EnrollmentService) CreateLarp(ctx context.Context, actor models.Actor, name, description, factionsName string) (*models.Larp, error) {
	args := m.Called(ctx, actor, name, description, factionsName)
	larp, _ := args.Get(0).(*models.Larp)
	return larp, args.Error(1)
}

func (m *EnrollmentService) SetSheetCreationOpened(ctx context.Context, actor models.Actor, larpID uuid.UUID, opened bool) error {
	args := m.Called(ctx, actor, larpID, opened)
	return args.Error(0)
}

func (m *EnrollmentService) ListOpuses(ctx context.Context, larpID uuid.UUID) ([]models.Opus, error) {
	args := m.Called(ctx, larpID)
	opuses, _ := args.Get(0).([]models.Opus)
	return opuses, args.Error(1)
}

func (m *EnrollmentService) CreateOpus(ctx context.Context, actor models.Actor, larpID uuid.UUID, name string, date *time.Time, description, location string) (*models.Opus, error) {
	args := m.Called(ctx, actor, larpID, name, date, description, location)
	opus, _ := args.Get(0).(*models.Opus)
	return opus, args.Error(1)
}

func (m *EnrollmentService) ListFactions(ctx context.Context, larpID uuid.UUID) ([]models.Faction, error) {
	args := m.Called(ctx, larpID)
	factions, _ := args.Get(0).([]models.Faction)
	return factions, args.Error(1)
}

func (m *EnrollmentService) CreateFaction(ctx context.Context, actor models.Actor, larpID uuid.UUID, name, orgaContact string, orgaUserID *uuid.UUID) (*models.Faction, error) {
	args := m.Called(ctx, actor, larpID, name, orgaContact, orgaUserID)
	faction, _ := args.Get(0).(*models.Faction)
	return faction, args.Error(1)
}

func (m *EnrollmentService) ListTickets(ctx context.Context, opusID uuid.UUID) ([]models.Ticket, error) {
	args := m.Called(ctx, opusID)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *EnrollmentService) CreateTicket(ctx context.Context, actor models.Actor, opusID uuid.UUID, price float64, accessType models.AccessType) (*models.Ticket, error) {
	args := m.Called(ctx, actor, opusID, price, accessType)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

func (m *EnrollmentService) Enroll(ctx context.Context, actor models.Actor, opusID uuid.UUID, accessType models.AccessType, factionID *uuid.UUID) (*models.Inscription, error) {
	args := m.Called(ctx, actor, opusID, accessType, factionID)
	inscription, _ := args.Get(0).(*models.Inscription)
	return inscription, args.Error(1)
}

func (m *EnrollmentService) ListMyInscriptions(ctx context.Context, actor models.Actor) ([]models.Inscription, error) {
	args := m.Called(ctx, actor)
	inscriptions, _ := args.Get(0).([]models.Inscription)
	return inscriptions, args.Error(1)
}

func (m *EnrollmentService) CancelInscription(ctx context.Context, actor models.Actor, inscriptionID uuid.UUID) error {
	args := m.Called(ctx, actor, inscriptionID)
	return args.Error(0)
}

// ProfileService is a mock of service.ProfileService.
type ProfileService struct {
	mock.Mock
}

func (m *ProfileService) GetProfile(ctx context.Context, actor models.Actor) (*models.Profile, error) {
	args := m.Called(ctx, actor)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *ProfileService) SaveProfile(ctx context.Context, actor models.Actor, input service.UpsertProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, actor, input)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *ProfileService) GetPnjProfile(ctx context.Context, actor models.Actor, larpID uuid.UUID) (*models.PnjProfile, error) {
	args := m.Called(ctx, actor, larpID)
	profile, _ := args.Get(0).(*models.PnjProfile)
	return profile, args.Error(1)
}

func (m *ProfileService) SavePnjProfile(ctx context.Context, actor models.Actor, input service.UpsertPnjProfileInput) (*models.PnjProfile, error) {
	args := m.Called(ctx, actor, input)
	profile, _ := args.Get(0).(*models.PnjProfile)
	return profile, args.Error(1)
}
