/*
Copyright © 2026 the plume authors.
This file is part of plume.

plume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plume.  If not, see <http://www.gnu.org/licenses/>.
*/

package plumeutil

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ctessum/gobra"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// webAddress is where the web interface is served.
const webAddress = "localhost:7171"

// configHandler reads the configuration file given in the "config" form value
// and responds with the resulting option values.
func configHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	configFile := r.Form.Get("config")
	Root.PersistentFlags().Set("config", configFile)
	if err := setConfig(); err != nil {
		http.Error(w, err.Error(), http.StatusNoContent)
		return
	}
	config := make(map[string]interface{})
	for _, option := range options {
		config[option.name] = Cfg.Get(option.name)
	}
	if err := json.NewEncoder(w).Encode(config); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// StartWebServer starts a browser-based interface to the commands.
func StartWebServer() {
	setConfig() // Errors are reported when a command is run.

	http.HandleFunc("/setConfig", configHandler)

	for _, cmd := range []*cobra.Command{Root, versionCmd, runCmd, pointCmd, configCmd} {
		cmd.SilenceUsage = true // Usage messages clutter the web interface.
	}

	output := template.Must(template.New("").Parse(webTemplate))
	server := gobra.Server{Root: Root, ServerAddress: webAddress, AllowCORS: false, HTML: output}
	open.Run("http://" + webAddress)
	fmt.Println("If not opened automatically, please visit http://" + webAddress)
	server.Start()
}

const webTemplate = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>plume</title>
	<style>
		html, body {padding: 0; margin: 2% 0; font-family: sans-serif;}
		.container { max-width: 700px; margin: 0 auto; padding: 10px; }
		div[id^="gobra-"] blockquote { border-left: 3px solid #bbb; margin: .3em; color: #333; padding-left: 5px; font-size: 75%; }
		div[id^="gobra-"] code { font-weight: bold; }
		div[id^="gobra-"] input { font-family: monospace; margin-left: .2em; width: 50%; outline:none; }
		.red-border{ border: 1px solid #c35; }
		.green-border{ border: 1px solid #3c5; }
	</style>
</head>
<body>
<div class="container">
	<h1>plume</h1>
	<p>Configure the contaminant plume simulation below.</p>
	<div>
		{{.}}
	</div>
</div>

<script>
let allFlags = [...document.querySelectorAll('[data-name]')];
let configInput = allFlags.filter(x => x.dataset.name == "config")[0].children[0];
configInput.addEventListener("input", e => {
	fetch("http://` + webAddress + `/setConfig?config="+configInput.value)
		.then(res => {
			if (res.status == 204) {
				configInput.classList.remove("green-border");
				configInput.classList.add("red-border");
				return;
			}
			res.json().then(data => {
				configInput.classList.remove("red-border");
				for (let key in data)
					for (let f of allFlags)
						if (f.dataset.name == key) {
							let input = f.children[0];
							let v = JSON.stringify(data[key]).replace(/^"+|"+$/g, '');
							if (input.value != v) {
								input.value = v;
								input.classList.add("green-border");
							}
						}
			})
		})
		.catch(err => console.log("Error fetching /setConfig", err));
})
</script>
</body>
</html>`
