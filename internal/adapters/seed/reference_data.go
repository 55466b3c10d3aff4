package seed

import (
	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
)

// referenceRanges is the curated price reference table, in KRW.
// Ranges come from published clinic fee surveys and are deliberately
// coarse; they act as a credibility floor, not as ground truth.
var referenceRanges = []entities.SeedRange{
	// Dental
	{ProcedureLabel: "스케일링", CategoryLabel: "dental", Species: entities.SpeciesDog, Min: 150000, Max: 450000, Avg: 280000},
	{ProcedureLabel: "스케일링", CategoryLabel: "dental", Species: entities.SpeciesCat, Min: 200000, Max: 500000, Avg: 320000},
	{ProcedureLabel: "발치", CategoryLabel: "dental", Species: entities.SpeciesAny, Min: 50000, Max: 800000, Avg: 250000},

	// Surgery
	{ProcedureLabel: "중성화수술", CategoryLabel: "neutering", Species: entities.SpeciesDog, Min: 200000, Max: 700000, Avg: 400000},
	{ProcedureLabel: "중성화수술", CategoryLabel: "neutering", Species: entities.SpeciesCat, Min: 150000, Max: 500000, Avg: 300000},
	{ProcedureLabel: "슬개골탈구수술", CategoryLabel: "orthopedic surgery", Species: entities.SpeciesDog, Min: 1000000, Max: 3500000, Avg: 2000000},
	{ProcedureLabel: "제왕절개", CategoryLabel: "surgery", Species: entities.SpeciesAny, Min: 500000, Max: 2000000, Avg: 1100000},

	// Diagnostics
	{ProcedureLabel: "혈액검사", CategoryLabel: "blood test", Species: entities.SpeciesAny, Min: 30000, Max: 200000, Avg: 90000},
	{ProcedureLabel: "엑스레이", CategoryLabel: "x-ray", Species: entities.SpeciesAny, Min: 30000, Max: 150000, Avg: 70000},
	{ProcedureLabel: "초음파검사", CategoryLabel: "ultrasound", Species: entities.SpeciesAny, Min: 50000, Max: 300000, Avg: 130000},
	{ProcedureLabel: "종합검진", CategoryLabel: "health checkup", Species: entities.SpeciesDog, Min: 150000, Max: 700000, Avg: 350000},
	{ProcedureLabel: "종합검진", CategoryLabel: "health checkup", Species: entities.SpeciesCat, Min: 150000, Max: 600000, Avg: 320000},
	{ProcedureLabel: "MRI검사", CategoryLabel: "mri", Species: entities.SpeciesAny, Min: 600000, Max: 1500000, Avg: 1000000},
	{ProcedureLabel: "CT검사", CategoryLabel: "ct", Species: entities.SpeciesAny, Min: 400000, Max: 1200000, Avg: 700000},

	// Preventive care
	{ProcedureLabel: "종합백신", CategoryLabel: "vaccination", Species: entities.SpeciesDog, Min: 20000, Max: 50000, Avg: 30000},
	{ProcedureLabel: "종합백신", CategoryLabel: "vaccination", Species: entities.SpeciesCat, Min: 25000, Max: 60000, Avg: 38000},
	{ProcedureLabel: "광견병예방접종", CategoryLabel: "vaccination", Species: entities.SpeciesDog, Min: 15000, Max: 40000, Avg: 25000},
	{ProcedureLabel: "심장사상충예방", CategoryLabel: "heartworm prevention", Species: entities.SpeciesAny, Min: 10000, Max: 40000, Avg: 20000},

	// Consultations and care
	{ProcedureLabel: "진료비", CategoryLabel: "consultation", Species: entities.SpeciesAny, Min: 5000, Max: 30000, Avg: 11000},
	{ProcedureLabel: "입원비", CategoryLabel: "hospitalization", Species: entities.SpeciesAny, Min: 30000, Max: 150000, Avg: 70000},
}
