package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/tenderfeed/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/tenderfeed/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.RecommendationStatus]())
	g.AddDefinedType(reflect.TypeFor[core.CompanySize]())
	g.AddDefinedType(reflect.TypeFor[core.YearsInOperation]())
	g.AddDefinedType(reflect.TypeFor[core.InteractionType]())

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)

	err = g.AddStruct(reflect.TypeFor[core.ScoringWeights](),
		structops.WithField(), // Semantic
		structops.WithField(), // ActiveSectors
		structops.WithField(), // Keywords
		structops.WithField(), // SubSectors
		structops.WithField(), // Region
		structops.WithField(), // Budget
		structops.WithField()) // Certifications
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Tender](),
		structops.WithField(),     // Id
		structops.WithField(),     // Title
		structops.WithField(),     // Description
		structops.WithField(),     // Category
		structops.WithField(),     // Region
		structops.WithField(),     // Budget
		structops.WithField(),     // Currency
		structops.WithField(opts), // Deadline
		structops.WithField(),     // Status
		structops.WithField(),     // Summary
		structops.WithField(),     // Tags
		structops.WithField(),     // Vector
		structops.WithField(opts), // EmbeddedAt
		structops.WithField(opts), // InsertedAt
		structops.WithField(opts)) // UpdatedAt
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Profile](),
		structops.WithField(),     // Id
		structops.WithField(),     // CompanyId
		structops.WithField(),     // UserId
		structops.WithField(),     // PrimarySector
		structops.WithField(),     // ActiveSectors
		structops.WithField(),     // SubSectors
		structops.WithField(),     // PreferredRegions
		structops.WithField(),     // Keywords
		structops.WithField(),     // Certifications
		structops.WithField(),     // BudgetMin
		structops.WithField(),     // BudgetMax
		structops.WithField(),     // BudgetCurrency
		structops.WithField(),     // CompanySize
		structops.WithField(),     // YearsInOperation
		structops.WithField(),     // Weights
		structops.WithField(),     // MinMatchThreshold
		structops.WithField(),     // Vector
		structops.WithField(opts), // EmbeddedAt
		structops.WithField(),     // InteractionCount
		structops.WithField(opts), // LastInteractionAt
		structops.WithField(opts), // InsertedAt
		structops.WithField(opts)) // UpdatedAt
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Interaction](),
		structops.WithField(),     // Id
		structops.WithField(),     // UserId
		structops.WithField(),     // TenderId
		structops.WithField(),     // Type
		structops.WithField(),     // Weight
		structops.WithField(),     // Reason
		structops.WithField(),     // MatchScoreAtTime
		structops.WithField(),     // TenderCategory
		structops.WithField(),     // TenderRegion
		structops.WithField(),     // TenderBudget
		structops.WithField(opts), // CreatedAt
		structops.WithField(opts)) // UpdatedAt
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
