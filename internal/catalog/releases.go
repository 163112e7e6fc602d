package catalog

// releases mirrors the IAEA distribution layout for each supported FENDL
// release. Archive lists and sizes come from the published release notes;
// discovery patterns reflect how each archive unpacks.
var releases = map[string]map[Particle]ParticleSpec{
	"3.1d": {
		ParticleNeutron: {
			BaseURL:        "https://www-nds.iaea.org/fendl/data/neutron/",
			Files:          []string{"fendl31d-neutron-ace.zip"},
			Format:         FormatACE,
			Discovery:      Discovery{Subdir: "fendl31d_ACE", Glob: "*"},
			CompressedMB:   425,
			UncompressedMB: 2290,
		},
		ParticlePhoton: {
			BaseURL:        "https://www-nds.iaea.org/fendl/data/atom/",
			Files:          []string{"fendl30-atom-endf.zip"},
			Format:         FormatENDF,
			Discovery:      Discovery{Subdir: "endf", Glob: "*.txt"},
			CompressedMB:   4,
			UncompressedMB: 12,
		},
	},
	"3.1a": {
		ParticleNeutron: {
			BaseURL:        "https://www-nds.iaea.org/fendl31/data/neutron/",
			Files:          []string{"fendl31a-neutron-ace.zip"},
			Format:         FormatACE,
			Discovery:      Discovery{Glob: "*.ace"},
			CompressedMB:   384,
			UncompressedMB: 2250,
		},
		ParticlePhoton: {
			BaseURL:        "https://www-nds.iaea.org/fendl31/data/atom/",
			Files:          []string{"fendl30-atom-endf.zip"},
			Format:         FormatENDF,
			Discovery:      Discovery{Subdir: "endf", Glob: "*.txt"},
			CompressedMB:   4,
			UncompressedMB: 12,
		},
	},
	"3.0": {
		ParticleNeutron: {
			BaseURL:        "https://www-nds.iaea.org/fendl30/data/neutron/",
			Files:          []string{"fendl30-neutron-ace.zip"},
			Format:         FormatACE,
			Discovery:      Discovery{Subdir: "ace", Glob: "*.ace"},
			CompressedMB:   364,
			UncompressedMB: 2200,
		},
		ParticlePhoton: {
			BaseURL:        "https://www-nds.iaea.org/fendl30/data/atom/",
			Files:          []string{"fendl30-atom-endf.zip"},
			Format:         FormatENDF,
			Discovery:      Discovery{Subdir: "endf", Glob: "*.txt"},
			CompressedMB:   4,
			UncompressedMB: 12,
		},
	},
	"2.1": {
		ParticleNeutron: {
			BaseURL: "https://www-nds.iaea.org/fendl21/fendl21mc/",
			Files: []string{
				"H001mc.zip", "H002mc.zip", "H003mc.zip", "He003mc.zip",
				"He004mc.zip", "Li006mc.zip", "Li007mc.zip", "Be009mc.zip",
				"B010mc.zip", "B011mc.zip", "C012mc.zip", "N014mc.zip",
				"N015mc.zip", "O016mc.zip", "F019mc.zip", "Na023mc.zip",
				"Mg000mc.zip", "Al027mc.zip", "Si028mc.zip", "Si029mc.zip",
				"Si030mc.zip", "P031mc.zip", "S000mc.zip", "Cl035mc.zip",
				"Cl037mc.zip", "K000mc.zip", "Ca000mc.zip", "Ti046mc.zip",
				"Ti047mc.zip", "Ti048mc.zip", "Ti049mc.zip", "Ti050mc.zip",
				"V000mc.zip", "Cr050mc.zip", "Cr052mc.zip", "Cr053mc.zip",
				"Cr054mc.zip", "Mn055mc.zip", "Fe054mc.zip", "Fe056mc.zip",
				"Fe057mc.zip", "Fe058mc.zip", "Co059mc.zip", "Ni058mc.zip",
				"Ni060mc.zip", "Ni061mc.zip", "Ni062mc.zip", "Ni064mc.zip",
				"Cu063mc.zip", "Cu065mc.zip", "Ga000mc.zip", "Zr000mc.zip",
				"Nb093mc.zip", "Mo092mc.zip", "Mo094mc.zip", "Mo095mc.zip",
				"Mo096mc.zip", "Mo097mc.zip", "Mo098mc.zip", "Mo100mc.zip",
				"Sn000mc.zip", "Ta181mc.zip", "W182mc.zip", "W183mc.zip",
				"W184mc.zip", "W186mc.zip", "Au197mc.zip", "Pb206mc.zip",
				"Pb207mc.zip", "Pb208mc.zip", "Bi209mc.zip",
			},
			Format:         FormatACE,
			Discovery:      Discovery{Glob: "*.ace"},
			CompressedMB:   100,
			UncompressedMB: 600,
		},
		ParticlePhoton: {
			BaseURL:        "https://www-nds.iaea.org/fendl21/fendl21e/",
			Files:          []string{"FENDLEP.zip"},
			Format:         FormatENDF,
			Discovery:      Discovery{Glob: "*.endf"},
			CompressedMB:   2,
			UncompressedMB: 5,
		},
	},
}
