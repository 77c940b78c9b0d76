package server

import "html/template"

// Server-rendered pages. The chart itself is rendered by go-echarts and
// embedded whole; these templates only add the forms that drive the edit
// protocol.

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "head"}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>daytrack</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; }
td, th { padding: 0.25em 0.75em; text-align: left; }
form.inline { display: inline; }
.notice { background: #fdd; padding: 0.5em 1em; }
.err { color: #b00; }
.warn { color: #b60; }
.muted { color: #999; }
.swatch { display: inline-block; width: 0.8em; height: 0.8em; border-radius: 50%; }
</style>
</head>
<body>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{if .Err}}<p class="err">{{.Err}}</p>{{end}}
{{end}}

{{define "foot"}}</body></html>{{end}}

{{define "index"}}
{{template "head" .}}
<h1>daytrack</h1>

<h2>Today ({{.Today.ISO}})</h2>
<table>
{{range .Trackables}}
<tr>
	<td><span class="swatch" style="background: {{.Hex}}"></span></td>
	<td>{{.T.DisplayQuestion}}</td>
	<td>
		<form class="inline" method="post" action="/trackables/{{.T.ID}}/answer">
			<input type="hidden" name="day" value="{{$.Today.ISO}}">
			<input name="value" value="{{.Answer}}" placeholder="{{.T.Responses.Kind}}">
			<button>save</button>
		</form>
	</td>
	<td>{{if .OutOfRange}}<span class="warn">outside current scale</span>{{end}}</td>
	<td>
		<form class="inline" method="post" action="/trackables/{{.T.ID}}/delete">
			<button {{if not .CanDelete}}disabled{{end}}>delete</button>
		</form>
	</td>
</tr>
{{end}}
</table>
<form method="post" action="/trackables/add"><button>add question</button></form>

<h2>Chartables</h2>
<table>
{{range .Chartables}}
<tr>
	<td><span class="swatch" style="background: {{.Hex}}"></span></td>
	<td>{{.C.DisplayName}}</td>
	<td class="muted">{{len .C.Sum}} summed{{if .C.Inverted}}, inverted{{end}}</td>
	<td>
		<form class="inline" method="post" action="/chartables/{{.C.ID}}/delete">
			<button {{if not .CanDelete}}disabled{{end}}>delete</button>
		</form>
	</td>
</tr>
{{end}}
</table>
<form method="post" action="/chartables/add"><button>add chartable</button></form>

<h2>Charts</h2>
<ul>
{{range .Charts}}
<li><a href="/charts/{{.ID}}">{{.DisplayName}}</a></li>
{{end}}
</ul>
<form method="post" action="/charts/add"><button>add chart</button></form>
{{template "foot"}}
{{end}}

{{define "chart"}}
{{template "head" .}}
<p><a href="/">&laquo; back</a></p>

<form class="inline" method="post" action="/charts/{{.Chart.ID}}/name">
	<input name="name" value="{{.Chart.Name}}" placeholder="[no name]">
	<button>rename</button>
</form>
<form class="inline" method="post" action="/charts/{{.Chart.ID}}/fill">
	<input type="hidden" name="fill" value="{{if .Chart.FillLines}}false{{else}}true{{end}}">
	<button>{{if .Chart.FillLines}}unfill{{else}}fill{{end}} lines</button>
</form>
<form class="inline" method="post" action="/charts/{{.Chart.ID}}/delete">
	<button>delete chart</button>
</form>

<div>{{.ChartHTML}}</div>

<h2>Data sets</h2>
<table>
{{range .Entries}}
<tr>
	<td><span class="swatch" style="background: {{.Hex}}"></span></td>
	<td><a href="/charts/{{$.Chart.ID}}?focus={{.RefParam}}">{{.Label}}</a></td>
	<td>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/visible">
			<input type="hidden" name="ref" value="{{.RefParam}}">
			<input type="hidden" name="visible" value="{{if .Visible}}false{{else}}true{{end}}">
			<button>{{if .Visible}}hide{{else}}show{{end}}</button>
		</form>
	</td>
	<td>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/up">
			<input type="hidden" name="index" value="{{.Index}}">
			<button {{if not .CanUp}}disabled{{end}}>&uarr;</button>
		</form>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/down">
			<input type="hidden" name="index" value="{{.Index}}">
			<button {{if not .CanDown}}disabled{{end}}>&darr;</button>
		</form>
	</td>
	{{if .IsTrackable}}
	<td>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/multiplier">
			<input type="hidden" name="ref" value="{{.RefParam}}">
			<input name="multiplier" value="{{.Multiplier}}" size="5">
			<button>weight</button>
		</form>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/inverted">
			<input type="hidden" name="ref" value="{{.RefParam}}">
			<input type="hidden" name="inverted" value="{{if .Inverted}}false{{else}}true{{end}}">
			<button>{{if .Inverted}}uninvert{{else}}invert{{end}}</button>
		</form>
	</td>
	{{else}}
	<td>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/edit/open">
			<input type="hidden" name="chartable" value="{{.ChartableID}}">
			<button>{{if .Editing}}close{{else}}edit{{end}}</button>
		</form>
	</td>
	{{end}}
	<td>
		<form class="inline" method="post" action="/charts/{{$.Chart.ID}}/entries/remove">
			<input type="hidden" name="ref" value="{{.RefParam}}">
			<button>remove</button>
		</form>
	</td>
</tr>
{{if .Edit}}
<tr><td></td><td colspan="5">
	<form class="inline" method="post" action="/chartables/{{.Edit.C.ID}}/name">
		<input name="name" value="{{.Edit.C.Name}}" placeholder="[no name]">
		<button>rename</button>
	</form>
	<form class="inline" method="post" action="/chartables/{{.Edit.C.ID}}/inverted">
		<input type="hidden" name="inverted" value="{{if .Edit.C.Inverted}}false{{else}}true{{end}}">
		<button>{{if .Edit.C.Inverted}}uninvert{{else}}invert{{end}}</button>
	</form>
	{{if .Edit.ColourEditable}}
	<form class="inline" method="post" action="/chartables/{{.Edit.C.ID}}/colour">
		<select name="colour">
			{{range $.Colours}}<option value="{{.}}">{{.}}</option>{{end}}
		</select>
		<button>set colour</button>
	</form>
	<form class="inline" method="post" action="/chartables/{{.Edit.C.ID}}/colour/clear">
		<button>derived colour</button>
	</form>
	{{end}}
	<table>
	{{range .Edit.Terms}}
	<tr>
		<td>{{.T.DisplayQuestion}}</td>
		<td>
			<form class="inline" method="post" action="/chartables/{{$.EditID}}/sum/multiplier">
				<input type="hidden" name="trackable" value="{{.T.ID}}">
				<input name="multiplier" value="{{.Term.Multiplier}}" size="5">
				<button>weight</button>
			</form>
		</td>
		<td>
			<form class="inline" method="post" action="/chartables/{{$.EditID}}/sum/remove">
				<input type="hidden" name="trackable" value="{{.T.ID}}">
				<button>remove</button>
			</form>
		</td>
	</tr>
	{{end}}
	</table>
	{{if .Edit.Available}}
	<form class="inline" method="post" action="/chartables/{{.Edit.C.ID}}/sum/add">
		<select name="trackable">
			{{range .Edit.Available}}<option value="{{.ID}}">{{.DisplayQuestion}}</option>{{end}}
		</select>
		<button>add to sum</button>
	</form>
	{{end}}
</td></tr>
{{end}}
{{end}}
</table>

{{if .Adding}}
<form class="inline" method="post" action="/charts/{{.Chart.ID}}/entries/add">
	<select name="candidate">
		{{range .Available}}<option value="chartable:{{.ID}}" {{if eq .ID $.Candidate}}selected{{end}}>{{.DisplayName}}</option>{{end}}
		{{range .AvailableTrackables}}<option value="trackable:{{.ID}}">{{.DisplayQuestion}} (raw)</option>{{end}}
		<option value="new" {{if .CreateNew}}selected{{end}}>create new chartable</option>
	</select>
	<button>add</button>
</form>
<form class="inline" method="post" action="/charts/{{.Chart.ID}}/edit/cancel">
	<button>cancel</button>
</form>
{{else}}
<form class="inline" method="post" action="/charts/{{.Chart.ID}}/edit/add">
	<button>add data set</button>
</form>
{{end}}
{{template "foot"}}
{{end}}
`))
