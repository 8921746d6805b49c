package deck

import (
	"fmt"

	"github.com/republica-game/republica/game"
)

// catalog is the built-in card set. Effects are typed and validated by
// ValidateCatalog before they are ever applied, so the engine can trust every
// key it reads here.
var catalog = []Card{
	{
		ID:      "merenda-escolar",
		Title:   "Merenda Escolar",
		Dilemma: "O contrato da merenda venceu e as escolas públicas estão sem comida.",
		Options: []Option{
			{
				Text: "Renovar o contrato com licitação pública",
				Effects: game.Effects{
					{Key: game.KeyHunger, Delta: -2},
					{Key: game.KeyPopularSupport, Delta: 1},
				},
			},
			{
				Text: "Renovar com a empresa do seu cunhado, com comissão",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: 10},
					{Key: game.KeyHunger, Delta: 1},
				},
			},
		},
	},
	{
		ID:      "crise-fiscal",
		Title:   "Crise Fiscal",
		Dilemma: "O tesouro está vazio e as contas do ano não fecham.",
		Options: []Option{
			{
				Text: "Aprovar um pacote de austeridade impopular",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: -3},
				},
			},
			{
				Text: "Maquiar as contas e empurrar o rombo para o próximo mandato",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: 1},
					{Key: game.KeyPopularSupport, Delta: -1},
					{Key: game.KeyCapital, Delta: 5},
				},
			},
		},
	},
	{
		ID:      "caixa-dois",
		Title:   "Caixa Dois",
		Dilemma: "Uma empreiteira oferece uma doação não contabilizada para a sua campanha.",
		Options: []Option{
			{
				Text: "Recusar e denunciar ao Ministério Público",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 2},
					{Key: game.KeyCapital, Delta: -5},
				},
			},
			{
				Text: "Aceitar discretamente",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: 15},
					{Key: game.KeyPopularSupport, Delta: -1},
				},
			},
		},
	},
	{
		ID:      "seca-no-sertao",
		Title:   "Seca no Sertão",
		Dilemma: "A seca castiga o interior e os açudes estão no volume morto.",
		Options: []Option{
			{
				Text: "Financiar cisternas e carros-pipa",
				Effects: game.Effects{
					{Key: game.KeyHunger, Delta: -2},
					{Key: game.KeyWellbeing, Delta: 1},
					{Key: game.KeyEconomy, Delta: -1},
				},
			},
			{
				Text: "Desviar a verba da transposição",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: 10},
					{Key: game.KeyHunger, Delta: 2},
				},
			},
		},
	},
	{
		ID:      "greve-dos-professores",
		Title:   "Greve dos Professores",
		Dilemma: "Os professores cruzaram os braços exigindo o piso salarial.",
		Options: []Option{
			{
				Text: "Negociar e pagar o piso",
				Effects: game.Effects{
					{Key: game.KeyEducation, Delta: 2},
					{Key: game.KeyEconomy, Delta: -1},
				},
			},
			{
				Text: "Cortar o ponto dos grevistas",
				Effects: game.Effects{
					{Key: game.KeyEducation, Delta: -2},
					{Key: game.KeyPopularSupport, Delta: -1},
					{Key: game.KeyEconomy, Delta: 1},
				},
			},
		},
	},
	{
		ID:      "hospital-de-campanha",
		Title:   "Hospital de Campanha",
		Dilemma: "Uma epidemia se espalha e os leitos acabaram.",
		Options: []Option{
			{
				Text: "Erguer hospitais de campanha com transparência",
				Effects: game.Effects{
					{Key: game.KeyWellbeing, Delta: 2},
					{Key: game.KeyEconomy, Delta: -1},
				},
			},
			{
				Text: "Comprar respiradores superfaturados de um aliado",
				Effects: game.Effects{
					{Key: game.KeyWellbeing, Delta: 1},
					{Key: game.KeyCapital, Delta: 10},
					{Key: game.KeyPopularSupport, Delta: -2},
				},
			},
		},
	},
	{
		ID:      "concessao-de-radios",
		Title:   "Concessão de Rádios",
		Dilemma: "Concessões de rádio e TV estão para vencer em ano eleitoral.",
		Options: []Option{
			{
				Text: "Licitar as frequências abertamente",
				Effects: game.Effects{
					{Key: game.KeyEducation, Delta: 1},
					{Key: game.KeyPopularSupport, Delta: 1},
				},
			},
			{
				Text: "Renovar para as emissoras que apoiam o governo",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 2},
					{Key: game.KeyEducation, Delta: -1},
					{Key: game.KeyCapital, Delta: 5},
				},
			},
		},
	},
	{
		ID:      "desfile-militar",
		Title:   "Desfile Militar",
		Dilemma: "Os generais pedem um grande desfile e aumento no orçamento da defesa.",
		Options: []Option{
			{
				Text: "Manter o orçamento e prestigiar a tropa com palavras",
				Effects: game.Effects{
					{Key: game.KeyMilitaryReligion, Delta: -1},
					{Key: game.KeyEconomy, Delta: 1},
				},
			},
			{
				Text: "Conceder o desfile e o aumento",
				Effects: game.Effects{
					{Key: game.KeyMilitaryReligion, Delta: 2},
					{Key: game.KeyEconomy, Delta: -2},
				},
			},
		},
	},

	// role-scoped dilemmas
	{
		ID:      "reforma-ministerial",
		Title:   "Reforma Ministerial",
		Dilemma: "A base aliada ameaça desembarcar do governo sem novos ministérios.",
		Role:    game.RolePresidente,
		Options: []Option{
			{
				Text: "Nomear técnicos e bancar o desgaste",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: 1},
					{Key: game.KeyPopularSupport, Delta: -1},
				},
			},
			{
				Text: "Lotear os ministérios entre os partidos",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 1},
					{Key: game.KeyEducation, Delta: -1},
					{Key: game.KeyCapital, Delta: 5},
				},
			},
		},
	},
	{
		ID:      "cpi-da-merenda",
		Title:   "CPI da Merenda",
		Dilemma: "O plenário decide se instala uma CPI para investigar desvios na merenda.",
		Role:    game.RoleSenadora,
		Options: []Option{
			{
				Text: "Assinar o requerimento da CPI",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 2},
					{Key: game.KeyHunger, Delta: -1},
				},
			},
			{
				Text: "Engavetar em troca de emendas",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: 10},
					{Key: game.KeyPopularSupport, Delta: -2},
				},
			},
		},
	},
	{
		ID:      "obra-da-rodovia",
		Title:   "Obra da Rodovia",
		Dilemma: "A duplicação da rodovia estadual está parada há dois anos.",
		Role:    game.RoleGovernador,
		Options: []Option{
			{
				Text: "Retomar a obra com fiscalização independente",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: 2},
					{Key: game.KeyWellbeing, Delta: 1},
					{Key: game.KeyBoardPosition, Delta: 1},
				},
			},
			{
				Text: "Retomar com aditivos generosos à empreiteira",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: 1},
					{Key: game.KeyCapital, Delta: 10},
				},
			},
		},
	},
	{
		ID:      "enchente-na-cidade",
		Title:   "Enchente na Cidade",
		Dilemma: "As chuvas alagaram a periferia e desabrigaram centenas de famílias.",
		Role:    game.RolePrefeita,
		Options: []Option{
			{
				Text: "Abrir abrigos e dragar os córregos",
				Effects: game.Effects{
					{Key: game.KeyWellbeing, Delta: 2},
					{Key: game.KeyEconomy, Delta: -1},
					{Key: game.KeyPopularSupport, Delta: 1},
				},
			},
			{
				Text: "Distribuir cestas básicas com seu rosto estampado",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 2},
					{Key: game.KeyHunger, Delta: -1},
					{Key: game.KeyWellbeing, Delta: -1},
				},
			},
		},
	},
	{
		ID:      "fundacao-fantasma",
		Title:   "Fundação Fantasma",
		Dilemma: "Sua fundação de fachada pode receber convênios sem chamar atenção.",
		Role:    game.RoleOportunista,
		Options: []Option{
			{
				Text: "Encerrar a fundação antes que descubram",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: -10},
					{Key: game.KeyPopularSupport, Delta: 1},
				},
			},
			{
				Text: "Firmar convênios milionários",
				Effects: game.Effects{
					{Key: game.KeyCapital, Delta: 20},
					{Key: game.KeyEducation, Delta: -1},
				},
			},
		},
	},
	{
		ID:      "voto-de-cabresto",
		Title:   "Voto de Cabresto",
		Dilemma: "Um coronel local oferece os votos do seu curral eleitoral.",
		Options: []Option{
			{
				Text: "Recusar e fazer campanha nas ruas",
				Effects: game.Effects{
					{Key: game.KeyEducation, Delta: 1},
					{Key: game.KeyPopularSupport, Delta: 1},
				},
			},
			{
				Text: "Fechar o acordo",
				Effects: game.Effects{
					{Key: game.KeyPopularSupport, Delta: 2},
					{Key: game.KeyEducation, Delta: -2},
					{Key: game.KeyCapital, Delta: 5},
				},
			},
		},
	},
	{
		ID:      "safra-recorde",
		Title:   "Safra Recorde",
		Dilemma: "O agronegócio colheu uma safra recorde e pede isenção de impostos.",
		Options: []Option{
			{
				Text: "Taxar a exportação e subsidiar o feijão",
				Effects: game.Effects{
					{Key: game.KeyHunger, Delta: -2},
					{Key: game.KeyEconomy, Delta: 1},
				},
			},
			{
				Text: "Conceder a isenção em troca de apoio",
				Effects: game.Effects{
					{Key: game.KeyEconomy, Delta: 2},
					{Key: game.KeyHunger, Delta: 1},
					{Key: game.KeyCapital, Delta: 5},
				},
			},
		},
	},
	{
		ID:      "romaria-nacional",
		Title:   "Romaria Nacional",
		Dilemma: "A maior romaria do país pede verba federal para a festa do padroeiro.",
		Options: []Option{
			{
				Text: "Liberar apenas a estrutura de segurança",
				Effects: game.Effects{
					{Key: game.KeyMilitaryReligion, Delta: -1},
					{Key: game.KeyWellbeing, Delta: 1},
				},
			},
			{
				Text: "Patrocinar a festa inteira no palanque",
				Effects: game.Effects{
					{Key: game.KeyMilitaryReligion, Delta: 2},
					{Key: game.KeyPopularSupport, Delta: 1},
					{Key: game.KeyEconomy, Delta: -1},
				},
			},
		},
	},
}

// Seed is the catalog membership row persisted for draw bookkeeping. Card
// content stays in this package; the store only needs IDs and role scopes.
type Seed struct {
	ID   string
	Role game.Role
}

// Catalog returns the full card set.
func Catalog() []Card {
	return catalog
}

// Seeds returns the rows to persist into the decision_cards table.
func Seeds() []Seed {
	seeds := make([]Seed, 0, len(catalog))
	for _, c := range catalog {
		seeds = append(seeds, Seed{ID: c.ID, Role: c.Role})
	}
	return seeds
}

// ByID looks a card up by its catalog ID.
func ByID(id string) (Card, error) {
	for _, c := range catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %q", ErrUnknownCardID, id)
}

// ValidateCatalog checks every card once, at load time.
func ValidateCatalog() error {
	seen := map[string]bool{}
	for _, c := range catalog {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
