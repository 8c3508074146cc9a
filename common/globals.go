package common

// BendaVersion is the current benda version as a string.
const BendaVersion string = "0.2.0"

// ConfigFileName is the name of the benda configuration file.
const ConfigFileName string = "benda.toml"

// BendFileExt is the file extension for emitted Bend source files.
const BendFileExt string = ".bend"

// EntryName is the name of the synthesized entry definition.
const EntryName string = "main"

// SwitchName is the name of the switch marker call in the target IR.
const SwitchName string = "switch"
